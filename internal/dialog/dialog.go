// Package dialog reports fatal errors to users who did not start the program from a terminal.
package dialog

import (
	"fmt"

	"github.com/gotk3/gotk3/gtk"
)

// ShowError shows a modal error dialog and blocks until it is dismissed.
// It returns an error if GTK cannot be initialised, for example without a display.
func ShowError(title string, err error) error {
	if initErr := gtk.InitCheck(nil); initErr != nil {
		return fmt.Errorf("gtk.InitCheck: %w", initErr)
	}

	dialog := gtk.MessageDialogNew(
		nil,
		gtk.DIALOG_MODAL,
		gtk.MESSAGE_ERROR,
		gtk.BUTTONS_CLOSE,
		"%s",
		err.Error(),
	)
	dialog.SetTitle(title)

	messageArea, areaErr := dialog.GetMessageArea()
	if areaErr == nil {
		messageArea.GetChildren().Foreach(func(item interface{}) {
			if widget, ok := item.(*gtk.Widget); ok {
				l, err := gtk.WidgetToLabel(widget)
				if err != nil {
					return
				}

				l.SetSelectable(true)
			}
		})
	}

	dialog.SetKeepAbove(true)
	dialog.Run()
	dialog.Destroy()

	// Let GTK process the destroy before returning.
	for gtk.EventsPending() {
		gtk.MainIteration()
	}
	return nil
}
