package glimpse

// win32 class and window style bits. They live in a portable file so the
// style assembly can be tested on every platform.
const (
	csVRedraw     = 0x0001
	csHRedraw     = 0x0002
	csDblClks     = 0x0008
	csNoClose     = 0x0200
	csSaveBits    = 0x0800
	csGlobalClass = 0x4000
	csDropShadow  = 0x00020000

	wsPopup            = 0x80000000
	wsVisible          = 0x10000000
	wsOverlappedWindow = 0x00CF0000
	wsPopupWindow      = 0x80880000

	wsExTopMost     = 0x00000008
	wsExAcceptFiles = 0x00000010
	wsExToolWindow  = 0x00000080
	wsExNoActivate  = 0x08000000
)

func classStyleBits(styles ClassStyle) uint32 {
	var bits uint32

	if !styles.Has(ClassNoRedrawOnResize) {
		bits |= csHRedraw | csVRedraw
	}

	if styles.Has(ClassDropShadow) {
		bits |= csDropShadow
	}

	if !styles.Has(ClassIgnoreDoubleClicks) {
		bits |= csDblClks
	}

	if styles.Has(ClassNoCloseBox) {
		bits |= csNoClose
	}

	if styles.Has(ClassSaveClippedGraphics) {
		bits |= csSaveBits
	}

	if styles.Has(ClassGlobal) {
		bits |= csGlobalClass
	}

	return bits
}

func windowStyleBits(s WindowSettings) (style, exStyle uint32) {
	style, exStyle = s.Styles, s.ExtendedStyles

	switch s.StylePreset {
	case StyleNormal:
		style |= wsOverlappedWindow
	case StylePopup:
		style |= wsPopupWindow
	case StyleBorderless:
		style |= wsPopup
	case StyleUnmodified:
	}

	if s.Visible {
		style |= wsVisible
	}

	if s.DragAndDropFiles {
		exStyle |= wsExAcceptFiles
	}

	if s.IgnoreFocusSwitch {
		exStyle |= wsExNoActivate
	}

	if s.TopMost {
		exStyle |= wsExTopMost
	}

	if s.HideInTaskbar {
		exStyle |= wsExToolWindow
	}

	return style, exStyle
}
