package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pennywise-app/pennywise/internal/importer"
	"github.com/pennywise-app/pennywise/internal/store"
)

func TestMapErrorKnownPatterns(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"duplicate key", errors.New(`duplicate key value violates unique constraint "accounts_pkey"`), "DB001"},
		{"foreign key", errors.New(`insert or update on table "transactions" violates foreign key constraint`), "DB002"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), "DB003"},
		{"timeout", errors.New("context deadline exceeded"), "DB004"},
		{"empty file", importer.ErrEmptyFile, "FILE001"},
		{"unreadable file", fmt.Errorf("load: %w", importer.ErrUnreadableFile), "FILE002"},
		{"invalid date", errors.New(`row 3: invalid date "not-a-date"`), "VAL001"},
		{"invalid number", errors.New(`row 1: invalid number "12,5"`), "VAL002"},
		{"not ready", importer.ErrNotReady, "IMP001"},
		{"session expired", importer.ErrSessionNotFound, "IMP002"},
		{"record missing", store.ErrNotFound, "REQ001"},
		{"unknown", errors.New("something else entirely"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if got.Message == "" {
				t.Errorf("MapError(%v) has empty message", tt.err)
			}
		})
	}
}

func TestMapErrorCaseInsensitive(t *testing.T) {
	got := MapError(errors.New("DUPLICATE KEY value"))
	if got.Code != "DB001" {
		t.Errorf("got code %q, want DB001", got.Code)
	}
}

func TestMapErrorNil(t *testing.T) {
	got := MapError(nil)
	if got.Code != "OK" {
		t.Errorf("MapError(nil).Code = %q, want OK", got.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"session gone", importer.ErrSessionNotFound, http.StatusNotFound},
		{"empty file", importer.ErrEmptyFile, http.StatusBadRequest},
		{"unreadable", importer.ErrUnreadableFile, http.StatusBadRequest},
		{"not ready", importer.ErrNotReady, http.StatusBadRequest},
		{"in flight", importer.ErrSubmitInFlight, http.StatusConflict},
		{"wrapped not found", fmt.Errorf("get account: %w", store.ErrNotFound), http.StatusNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
