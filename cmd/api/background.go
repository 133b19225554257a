package main

import (
	"fmt"
)

// background runs fn on its own goroutine. A panic is logged instead of
// taking the server down, and run waits for pending jobs before exiting.
func (app *application) background(fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()

		defer func() {
			if err := recover(); err != nil {
				app.logger.Errorw("background job panicked", "error", fmt.Sprintf("%v", err))
			}
		}()

		fn()
	}()
}

// sendMail delivers a templated email off the request path.
func (app *application) sendMail(template, username, email string, data any) {
	app.background(func() {
		if err := app.mailer.Send(template, username, email, data); err != nil {
			app.logger.Errorw("error sending email", "template", template, "email", email, "error", err)
			return
		}
		app.logger.Infow("email sent", "template", template, "email", email)
	})
}
