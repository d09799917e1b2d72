// Package model defines the catalog types shared by the wizard, the render
// engine and the terminal front end. Questions describe one prompt each: the
// answer field they write, the input type that selects a validator, the review
// group they belong to and an optional default. The AutoFill default marks
// fields whose value is derived from other answers (see package answers) when
// the user leaves them empty. Templates are immutable HTML documents holding
// bracketed placeholder tokens such as `[Your Company Name]`.
package model
