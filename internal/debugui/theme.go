package debugui

import "github.com/inkyblackness/imgui-go/v4"

// applyDarkTheme styles the panel with Go cyan accents (#00ADD8).
func applyDarkTheme() {
	style := imgui.CurrentStyle()

	goCyan := imgui.Vec4{X: 0.0, Y: 0.678, Z: 0.847, W: 1.0}
	goCyanHover := imgui.Vec4{X: 0.0, Y: 0.678, Z: 0.847, W: 0.6}
	goCyanActive := imgui.Vec4{X: 0.0, Y: 0.678, Z: 0.847, W: 0.8}

	style.SetColor(imgui.StyleColorWindowBg, imgui.Vec4{X: 0.1, Y: 0.1, Z: 0.1, W: 0.9})
	style.SetColor(imgui.StyleColorTitleBg, imgui.Vec4{X: 0.08, Y: 0.08, Z: 0.08, W: 1.0})
	style.SetColor(imgui.StyleColorTitleBgActive, goCyan)
	style.SetColor(imgui.StyleColorTitleBgCollapsed, imgui.Vec4{X: 0.08, Y: 0.08, Z: 0.08, W: 0.75})
	style.SetColor(imgui.StyleColorBorder, goCyan)

	style.SetColor(imgui.StyleColorFrameBg, imgui.Vec4{X: 0.2, Y: 0.2, Z: 0.2, W: 0.54})
	style.SetColor(imgui.StyleColorFrameBgHovered, imgui.Vec4{X: 0.25, Y: 0.25, Z: 0.25, W: 0.78})
	style.SetColor(imgui.StyleColorFrameBgActive, imgui.Vec4{X: 0.3, Y: 0.3, Z: 0.3, W: 0.67})

	// Sliders are the only widgets the panel draws
	style.SetColor(imgui.StyleColorSliderGrab, goCyan)
	style.SetColor(imgui.StyleColorSliderGrabActive, goCyanActive)
	style.SetColor(imgui.StyleColorButtonHovered, goCyanHover)
	style.SetColor(imgui.StyleColorTextSelectedBg, goCyanHover)

	style.SetWindowBorderSize(1.0)
	style.SetWindowRounding(4.0)
	style.SetFrameRounding(2.0)
	style.SetGrabRounding(2.0)
}
