package wehttp

import (
	"context"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-counter-go/we"
)

const CorrelationHeader = "X-Correlation-Id"

const DefaultMaxBodyBytes = 1 << 20

// Store is the part of a we.Store the handler needs.
type Store[S any, A any] interface {
	Dispatch(ctx context.Context, action A) (*we.Task[S], error)
	Snapshot() we.Snapshot[S]
	History() []we.RecordedAction
}

type HandlerOption func(options *handlerOptions)

type handlerOptions struct {
	log          *zerolog.Logger
	operation    string
	maxBodyBytes int64
}

func Logger(log *zerolog.Logger) HandlerOption {
	return func(options *handlerOptions) {
		options.log = log
	}
}

// Operation names the handler in traces.
func Operation(name string) HandlerOption {
	return func(options *handlerOptions) {
		options.operation = name
	}
}

// MaxBodyBytes limits the size of action requests.
func MaxBodyBytes(limit int64) HandlerOption {
	return func(options *handlerOptions) {
		options.maxBodyBytes = limit
	}
}

type TaskResource struct {
	Task     we.TaskID     `json:"task"`
	Action   we.ActionName `json:"action"`
	Accepted we.Timestamp  `json:"accepted"`
}

func NewHandler[S any, A any](store Store[S, A], decode we.ActionDecoder[A], options ...HandlerOption) http.Handler {
	opts := handlerOptions{operation: "we-http", maxBodyBytes: DefaultMaxBodyBytes}
	for _, option := range options {
		option(&opts)
	}
	if opts.log == nil {
		opts.log = &log.Logger
	}

	service := &httpService[S, A]{
		log:          opts.log,
		store:        store,
		decode:       decode,
		encoder:      we.NewResourceEncoder[S](),
		maxBodyBytes: opts.maxBodyBytes,
	}

	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Method("GET", "/state", service.getState())
	r.Method("GET", "/history", service.getHistory())
	r.Method("POST", "/actions", service.dispatchAction())

	return WithTelemetry(r, opts.operation)
}

type httpService[S any, A any] struct {
	log          *zerolog.Logger
	store        Store[S, A]
	decode       we.ActionDecoder[A]
	encoder      we.SnapshotEncoder[S]
	maxBodyBytes int64
}

func (service *httpService[S, A]) getState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.encoder.Encode(w, r, http.StatusOK, service.store.Snapshot()); err != nil {
			service.log.Info().Err(err).Msg("failed to encode state")
		}
	}
}

func (service *httpService[S, A]) getHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusOK)
		render.JSON(w, r, service.store.History())
	}
}

func (service *httpService[S, A]) dispatchAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-type")
		mediaType, _, err := mime.ParseMediaType(contentType)
		if mediaType != "application/json" || err != nil {
			http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, service.maxBodyBytes))
		if err != nil {
			service.log.Info().Err(err).Msg("failed to read request body")
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}

		var remote we.RemoteAction
		if err := json.UnmarshalContext(r.Context(), body, &remote); err != nil || remote.Action == "" {
			service.log.Info().Err(err).Msg("failed to unmarshal action")
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		action, err := service.decode(remote)
		if err != nil {
			var notFound we.ActionNotFoundError
			if errors.As(err, &notFound) {
				http.Error(w, notFound.Error(), http.StatusNotFound)
				return
			}

			service.log.Info().Err(err).Str("action", remote.Action.String()).Msg("failed to decode action")
			http.Error(w, "invalid action payload", http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		if id := r.Header.Get(CorrelationHeader); id != "" {
			ctx = we.WithCorrelationId(ctx, we.CorrelationID(id))
		}

		task, err := service.store.Dispatch(ctx, action)
		if err != nil {
			service.log.Info().Err(err).Str("action", remote.Action.String()).Msg("failed to dispatch action")
			if errors.Is(err, we.ErrStoreClosed) {
				http.Error(w, "store closed", http.StatusServiceUnavailable)
				return
			}

			http.Error(w, "failed to dispatch action", http.StatusInternalServerError)
			return
		}

		if task.Pending() && r.URL.Query().Get("wait") != "true" {
			render.Status(r, http.StatusAccepted)
			render.JSON(w, r, TaskResource{
				Task:     task.ID,
				Action:   task.Action,
				Accepted: we.Revision(task.ID).Timestamp(),
			})
			return
		}

		snapshot, err := task.Wait(ctx)
		if err != nil {
			service.log.Info().Err(err).Str("task", task.ID.String()).Msg("action failed")
			http.Error(w, "failed to apply action", http.StatusInternalServerError)
			return
		}

		if err := service.encoder.Encode(w, r, http.StatusOK, snapshot); err != nil {
			service.log.Info().Err(err).Msg("failed to encode state")
		}
	}
}
