// Package notifier delivers accepted reclamations to the operator chat
// channel.
//
// # Contract
//
// The pipeline renders a notification with MessageBuilder and hands the text
// to a Sender. The sender's only promise is: accept text, return success or
// a descriptive failure. Delivery is synchronous from the pipeline's
// perspective, so a transport rejection surfaces as an internal error on the
// originating request. Transient failures (5xx, connection errors) are
// retried with linear backoff before giving up.
//
// TelegramSender posts to the Telegram Bot API sendMessage endpoint with
// parse_mode=HTML. When no bot token or chat ID is configured it runs in
// demo mode: the rendered message is logged and delivery reports success, so
// local development works without credentials.
package notifier
