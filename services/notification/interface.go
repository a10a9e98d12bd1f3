package notification

import "context"

// Notifier fans out side effects of booking lifecycle events: an in-app
// notification record, plus an email when the recipient has email
// notifications enabled.
//
// All methods are best-effort. Failures are logged and must never block or
// roll back the primary state change that triggered them.
type Notifier interface {
	// NotifyUser records an in-app notification for one user and enqueues an
	// email when the user's preference allows it.
	NotifyUser(ctx context.Context, userID, notifType, subject, message, link string)

	// NotifyAdmins fans NotifyUser out to every admin and superadmin account.
	NotifyAdmins(ctx context.Context, notifType, subject, message, link string)

	// EmailUser enqueues a bare email without an in-app record (used for
	// acknowledgement mails to the acting user).
	EmailUser(ctx context.Context, userID, subject, body string)
}
