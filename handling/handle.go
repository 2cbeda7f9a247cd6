package handling

import (
	"coffeeshop_server/lib"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleError renders err with the status of its category. Client errors
// carry their messages under data.errors; internal errors are logged and
// answered with a generic message.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	category := lib.Classify(err)
	if category == lib.CategoryInternal {
		logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))
		gecho.InternalServerError(w,
			gecho.WithMessage("Internal server error"),
			gecho.WithData(errorData("internal server error")),
			gecho.Send(),
		)
		return
	}

	messages := ClientMessages(err)
	logger.Debug("Request rejected",
		gecho.Field("category", category.String()),
		gecho.Field("kind", lib.KindOf(err).String()),
		gecho.Field("errors", messages),
		gecho.Field("msg", msg),
	)

	switch category {
	case lib.CategoryNotFound:
		gecho.NotFound(w, gecho.WithMessage(messages[0]), gecho.WithData(errorData(messages...)), gecho.Send())
	case lib.CategoryConflict:
		gecho.Conflict(w, gecho.WithMessage(messages[0]), gecho.WithData(errorData(messages...)), gecho.Send())
	default:
		gecho.BadRequest(w, gecho.WithMessage(messages[0]), gecho.WithData(errorData(messages...)), gecho.Send())
	}
}

// ClientMessages lists the messages safe to show to a client for err.
func ClientMessages(err error) []string {
	var ve *lib.ValidationError
	if errors.As(err, &ve) {
		if msgs := ve.Messages(); len(msgs) > 0 {
			return msgs
		}
	}
	var be *lib.BodyError
	if errors.As(err, &be) {
		return []string{be.Error()}
	}
	var e *lib.Error
	if errors.As(err, &e) && e.Message != "" {
		return []string{e.Message}
	}
	return []string{err.Error()}
}

func errorData(messages ...string) map[string]any {
	return map[string]any{"errors": messages}
}
