// Package fonts names the font stacks used by the SVG mark styles.
//
// Nothing is embedded in rendered documents; each stack falls through to
// whichever entry the viewer has installed, so output stays small and
// renders the same locally and served.
package fonts

// HandFamily is the primary handwriting font for sketch output.
const HandFamily = "Patrick Hand"

// HandStack lists [HandFamily] with platform fallbacks in CSS
// font-family form.
const HandStack = `'Patrick Hand', 'Comic Sans MS', 'Bradley Hand', 'Segoe Script', cursive`

// SansStack is the default stack for plain chart text.
const SansStack = `'Helvetica Neue', Helvetica, Arial, sans-serif`
