package glume

import (
	"fmt"
	"unicode"
)

// Key identifies a physical key independently of the windowing system.
type Key int

const (
	KeyUnknown Key = iota

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeySpace
	KeyApostrophe
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyEquals
	KeyLBracket
	KeyBackslash
	KeyRBracket
	KeyGrave

	KeyEscape
	KeyReturn
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyF25

	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadDecimal
	KeyNumpadDivide
	KeyNumpadMultiply
	KeyNumpadSubtract
	KeyNumpadAdd
	KeyNumpadEnter
	KeyNumpadEquals

	KeyLShift
	KeyLControl
	KeyLAlt
	KeyLSuper
	KeyRShift
	KeyRControl
	KeyRAlt
	KeyRSuper
	KeyMenu

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "Unknown",
	Key0:       "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",
	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F",
	KeyG: "G", KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L",
	KeyM: "M", KeyN: "N", KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R",
	KeyS: "S", KeyT: "T", KeyU: "U", KeyV: "V", KeyW: "W", KeyX: "X",
	KeyY: "Y", KeyZ: "Z",
	KeySpace:       "Space",
	KeyApostrophe:  "Apostrophe",
	KeyComma:       "Comma",
	KeyMinus:       "Minus",
	KeyPeriod:      "Period",
	KeySlash:       "Slash",
	KeySemicolon:   "Semicolon",
	KeyEquals:      "Equals",
	KeyLBracket:    "LBracket",
	KeyBackslash:   "Backslash",
	KeyRBracket:    "RBracket",
	KeyGrave:       "Grave",
	KeyEscape:      "Escape",
	KeyReturn:      "Return",
	KeyTab:         "Tab",
	KeyBackspace:   "Backspace",
	KeyInsert:      "Insert",
	KeyDelete:      "Delete",
	KeyRight:       "Right",
	KeyLeft:        "Left",
	KeyDown:        "Down",
	KeyUp:          "Up",
	KeyPageUp:      "PageUp",
	KeyPageDown:    "PageDown",
	KeyHome:        "Home",
	KeyEnd:         "End",
	KeyCapsLock:    "CapsLock",
	KeyScrollLock:  "ScrollLock",
	KeyNumLock:     "NumLock",
	KeyPrintScreen: "PrintScreen",
	KeyPause:       "Pause",
	KeyF1:          "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5",
	KeyF6: "F6", KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10",
	KeyF11: "F11", KeyF12: "F12", KeyF13: "F13", KeyF14: "F14", KeyF15: "F15",
	KeyF16: "F16", KeyF17: "F17", KeyF18: "F18", KeyF19: "F19", KeyF20: "F20",
	KeyF21: "F21", KeyF22: "F22", KeyF23: "F23", KeyF24: "F24", KeyF25: "F25",
	KeyNumpad0: "Numpad0", KeyNumpad1: "Numpad1", KeyNumpad2: "Numpad2",
	KeyNumpad3: "Numpad3", KeyNumpad4: "Numpad4", KeyNumpad5: "Numpad5",
	KeyNumpad6: "Numpad6", KeyNumpad7: "Numpad7", KeyNumpad8: "Numpad8",
	KeyNumpad9:        "Numpad9",
	KeyNumpadDecimal:  "NumpadDecimal",
	KeyNumpadDivide:   "NumpadDivide",
	KeyNumpadMultiply: "NumpadMultiply",
	KeyNumpadSubtract: "NumpadSubtract",
	KeyNumpadAdd:      "NumpadAdd",
	KeyNumpadEnter:    "NumpadEnter",
	KeyNumpadEquals:   "NumpadEquals",
	KeyLShift:         "LShift",
	KeyLControl:       "LControl",
	KeyLAlt:           "LAlt",
	KeyLSuper:         "LSuper",
	KeyRShift:         "RShift",
	KeyRControl:       "RControl",
	KeyRAlt:           "RAlt",
	KeyRSuper:         "RSuper",
	KeyMenu:           "Menu",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

var unshiftedChars = map[Key]rune{
	Key0: '0', Key1: '1', Key2: '2', Key3: '3', Key4: '4',
	Key5: '5', Key6: '6', Key7: '7', Key8: '8', Key9: '9',
	KeyA: 'a', KeyB: 'b', KeyC: 'c', KeyD: 'd', KeyE: 'e', KeyF: 'f',
	KeyG: 'g', KeyH: 'h', KeyI: 'i', KeyJ: 'j', KeyK: 'k', KeyL: 'l',
	KeyM: 'm', KeyN: 'n', KeyO: 'o', KeyP: 'p', KeyQ: 'q', KeyR: 'r',
	KeyS: 's', KeyT: 't', KeyU: 'u', KeyV: 'v', KeyW: 'w', KeyX: 'x',
	KeyY: 'y', KeyZ: 'z',
	KeyGrave:      '`',
	KeyMinus:      '-',
	KeyEquals:     '=',
	KeyTab:        '\t',
	KeyLBracket:   '[',
	KeyRBracket:   ']',
	KeyBackslash:  '\\',
	KeySemicolon:  ';',
	KeyApostrophe: '\'',
	KeyReturn:     '\n',
	KeyComma:      ',',
	KeyPeriod:     '.',
	KeySlash:      '/',
	KeySpace:      ' ',
}

// US layout.
var shiftedChars = map[rune]rune{
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
	'-': '_', '=': '+', '`': '~', '[': '{', ']': '}',
	'\\': '|', ';': ':', '\'': '"', ',': '<', '.': '>', '/': '?',
}

var numpadChars = map[Key]rune{
	KeyNumpad0: '0', KeyNumpad1: '1', KeyNumpad2: '2', KeyNumpad3: '3', KeyNumpad4: '4',
	KeyNumpad5: '5', KeyNumpad6: '6', KeyNumpad7: '7', KeyNumpad8: '8', KeyNumpad9: '9',
	KeyNumpadAdd:      '+',
	KeyNumpadDivide:   '/',
	KeyNumpadDecimal:  '.',
	KeyNumpadMultiply: '*',
	KeyNumpadSubtract: '-',
}

// KeyAsChar returns the character k types on a US keyboard layout.
// Keypad digits only type with num lock on.
func KeyAsChar(k Key, shift, capsLock, numLock bool) (rune, bool) {
	ch, ok := unshiftedChars[k]
	if !ok {
		ch, ok = numpadChars[k]
		if !ok {
			return 0, false
		}
		if !numLock && unicode.IsDigit(ch) {
			return 0, false
		}
		return ch, true
	}

	if unicode.IsLetter(ch) {
		if shift != capsLock {
			return unicode.ToUpper(ch), true
		}
		return ch, true
	}

	if !shift {
		return ch, true
	}
	ch, ok = shiftedChars[ch]
	return ch, ok
}
