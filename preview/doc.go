// Package preview renders a highlighting job into an interactive,
// scrollable terminal pager instead of writing LaTeX or a flat ANSI dump.
package preview
