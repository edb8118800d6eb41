package http

import (
	"errors"
	"net/http"

	"github.com/asig/closed-loop/internal/service"
	"github.com/asig/closed-loop/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrDuplicateEmail:     http.StatusConflict,
	store.ErrInvalidCredentials: http.StatusUnauthorized,
	store.ErrNotFound:           http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrEncodingRecords:    http.StatusInternalServerError,
	store.ErrWritingFile:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
