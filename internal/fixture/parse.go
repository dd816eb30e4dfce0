package fixture

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"matchday/internal/league"
)

const oddsPlaces = 5

var errNotPositive = errors.New("must be positive")

func fractionToDecimal(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, "()")
	cleaned = strings.TrimSpace(cleaned)

	parts := strings.SplitN(cleaned, "/", 2)
	if len(parts) != 2 {
		return 0, parseError(ErrOddsFormat, "fraction", raw, nil)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, parseError(ErrOddsFormat, "numerator", parts[0], err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, parseError(ErrOddsFormat, "denominator", parts[1], err)
	}
	if num <= 0 {
		return 0, parseError(ErrOddsFormat, "numerator", parts[0], errNotPositive)
	}
	if den <= 0 {
		return 0, parseError(ErrOddsFormat, "denominator", parts[1], errNotPositive)
	}
	return decimal.NewFromInt(num).DivRound(decimal.NewFromInt(den), oddsPlaces).InexactFloat64(), nil
}

func parseDate(text string, months league.Months) (time.Time, error) {
	fields := strings.Fields(text)
	if len(fields) != 4 {
		return time.Time{}, parseError(ErrDateFormat, "date", text, nil)
	}
	dayToken, monthToken, yearToken := fields[1], fields[2], fields[3]

	var digits strings.Builder
	for _, r := range dayToken {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	day, err := strconv.Atoi(digits.String())
	if err != nil {
		return time.Time{}, parseError(ErrDateFormat, "day", dayToken, err)
	}
	month, ok := months.Lookup(monthToken)
	if !ok {
		return time.Time{}, parseError(ErrUnknownMonth, "month", monthToken, nil)
	}
	year, err := strconv.Atoi(yearToken)
	if err != nil {
		return time.Time{}, parseError(ErrDateFormat, "year", yearToken, err)
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, parseError(ErrDateFormat, "date", text, errors.New("day out of range for month"))
	}
	return date, nil
}

func parseKickoff(text string) (Kickoff, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 {
		return Kickoff{}, parseError(ErrTimeFormat, "time", text, nil)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Kickoff{}, parseError(ErrTimeFormat, "hour", parts[0], err)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Kickoff{}, parseError(ErrTimeFormat, "minute", parts[1], err)
	}
	if hour < 0 || hour > 23 {
		return Kickoff{}, parseError(ErrTimeFormat, "hour", parts[0], errors.New("out of range"))
	}
	if minute < 0 || minute > 59 {
		return Kickoff{}, parseError(ErrTimeFormat, "minute", parts[1], errors.New("out of range"))
	}
	return Kickoff{Hour: hour, Minute: minute}, nil
}

func parseScore(text string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) != 2 {
		return 0, 0, parseError(ErrScoreFormat, "score", text, nil)
	}
	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, parseError(ErrScoreFormat, "home score", parts[0], err)
	}
	away, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, parseError(ErrScoreFormat, "away score", parts[1], err)
	}
	return home, away, nil
}
