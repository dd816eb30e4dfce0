// Package preflight provides readiness checks for the directories and page
// sources matchday depends on.
//
// These checks run in two contexts:
//   - The update runner calls RunAll before fetching anything. If a directory
//     check fails the run stops before taking the lock or touching the network.
//   - The CLI "matchday status --check" command adds CheckSources to show
//     whether each configured page answers.
package preflight
