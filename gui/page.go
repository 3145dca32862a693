package gui

import (
	"bytes"
	"html"
)

// renderProgressPage builds the page shown while an install runs.
func renderProgressPage(title string, darkMode bool) string {
	var buf bytes.Buffer
	writeHead(&buf, title, darkMode)
	buf.WriteString(`        <div class="bar"><div id="step-bar"></div></div>
        <p class="status" id="step-status">Starting...</p>
        <div class="transfer" id="transfer">
            <div class="bar"><div id="transfer-bar"></div></div>
            <p class="status" id="transfer-status"></p>
        </div>
        <div class="log" id="log"></div>
`)
	writeTail(&buf)
	return buf.String()
}

// renderLogPage builds the read-only log review with Copy and Close buttons.
func renderLogPage(title, content string, darkMode bool) string {
	var buf bytes.Buffer
	writeHead(&buf, title, darkMode)
	buf.WriteString(`        <pre class="log" id="log">` + html.EscapeString(content) + `</pre>
        <div class="buttons">
            <button id="copy" data-button="` + buttonCopy + `">Copy to Clipboard</button>
            <button id="close" class="primary" data-button="` + buttonClose + `">Close</button>
        </div>
`)
	writeTail(&buf)
	return buf.String()
}

func writeHead(buf *bytes.Buffer, title string, darkMode bool) {
	theme := "light"
	if darkMode {
		theme = "dark"
	}
	buf.WriteString(`<!DOCTYPE html>
<html lang="en" data-theme="` + theme + `">
<head>
    <meta charset="UTF-8">
    <style>` + cssContent + `</style>
</head>
<body>
    <div class="container">
        <h1 class="title">` + html.EscapeString(title) + `</h1>
`)
}

func writeTail(buf *bytes.Buffer) {
	buf.WriteString(`    </div>
    <script>` + jsContent + `</script>
</body>
</html>`)
}
