//go:build windows

package gui

import (
	"github.com/crafted-tech/webframe"
	"github.com/crafted-tech/webframe/types"
)

// asyncScriptEvaluator is implemented by the WebView2 frame. Scripts must be
// posted this way when called off the UI thread.
type asyncScriptEvaluator interface {
	EvaluateScriptAsync(script string)
}

type webFrame struct {
	wv types.WebFrame
}

func newFrame(title string, onMessage func(string), onClose func()) (frame, error) {
	wv, err := webframe.New(types.Config{
		Title:       title,
		Width:       "36em",
		Height:      "28em",
		Resizable:   true,
		StartHidden: true,
		OnClose:     onClose,
	})
	if err != nil {
		return nil, err
	}
	wv.SetFrameAppearance(types.FrameAppearance{
		TitleBar:         wv.GetHeaderBarColor(),
		BackdropTitleBar: wv.GetBackdropHeaderBarColor(),
	})
	wv.AddMessageHandler(onMessage)
	return &webFrame{wv: wv}, nil
}

func (f *webFrame) LoadHTML(html string) { f.wv.LoadHTML(html) }
func (f *webFrame) Show()                { f.wv.Show() }
func (f *webFrame) Run()                 { f.wv.Run() }
func (f *webFrame) Quit()                { f.wv.Quit() }
func (f *webFrame) Destroy()             { f.wv.Destroy() }
func (f *webFrame) IsDarkMode() bool     { return f.wv.IsDarkMode() }

func (f *webFrame) EvaluateScript(script string) {
	if async, ok := f.wv.(asyncScriptEvaluator); ok {
		async.EvaluateScriptAsync(script)
		return
	}
	f.wv.EvaluateScript(script)
}
