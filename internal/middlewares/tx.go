package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-expense-tracker/internal/logger"
	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
)

// TxMiddleware runs the wrapped handler inside a database transaction.
// The handler's response is held back until the transaction ends: it is
// committed when the status is below 400 and rolled back otherwise. A failed
// commit replaces the response with a 500. Hooks registered with AfterCommit
// run only after a successful commit, before the response is sent.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				writeInternalError(w)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			state := &txState{tx: tx}
			buf := &bufferedResponseWriter{header: w.Header(), statusCode: http.StatusOK}
			next.ServeHTTP(buf, r.WithContext(context.WithValue(r.Context(), txKey{}, state)))

			if buf.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to roll back transaction", "error", err)
				}
				buf.flush(w)
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				writeInternalError(w)
				return
			}

			for _, hook := range state.afterCommit {
				hook(r.Context())
			}
			buf.flush(w)
		})
	}
}

type txKey struct{}

type txState struct {
	tx          *sqlx.Tx
	afterCommit []func(ctx context.Context)
}

// GetTxFromContext returns the transaction opened by TxMiddleware, or nil.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	state, _ := ctx.Value(txKey{}).(*txState)
	if state == nil {
		return nil
	}
	return state.tx
}

// AfterCommit defers fn until the transaction in ctx commits. Without a
// transaction fn runs immediately. Deferred hooks are dropped on rollback.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	state, _ := ctx.Value(txKey{}).(*txState)
	if state == nil {
		fn(ctx)
		return
	}
	state.afterCommit = append(state.afterCommit, fn)
}

// bufferedResponseWriter records status and body; headers go straight to
// the real writer since they are not sent before flush.
type bufferedResponseWriter struct {
	header      http.Header
	statusCode  int
	wroteHeader bool
	body        bytes.Buffer
}

func (b *bufferedResponseWriter) Header() http.Header {
	return b.header
}

func (b *bufferedResponseWriter) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.statusCode = code
	b.wroteHeader = true
}

func (b *bufferedResponseWriter) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}

func (b *bufferedResponseWriter) flush(w http.ResponseWriter) {
	w.WriteHeader(b.statusCode)
	if _, err := w.Write(b.body.Bytes()); err != nil {
		logger.Log.Errorw("failed to write response", "error", err)
	}
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Internal server error"})
}
