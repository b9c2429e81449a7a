// Package ansi renders a highlighting job directly to a terminal (or a file
// meant to be paged with something like "less -R") using truecolor SGR
// escape sequences, instead of the LaTeX markup highlighting.WriteAlltt
// produces.
package ansi
