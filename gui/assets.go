package gui

import _ "embed"

// cssContent is the stylesheet shared by both pages.
//
//go:embed assets/style.css
var cssContent string

// jsContent defines the window.* functions the Go side calls and posts
// button clicks back through window.external.invoke.
//
//go:embed assets/runtime.js
var jsContent string
