package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Eursukkul/event-registration-service/internal/dto"
	"github.com/Eursukkul/event-registration-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock AllocatorService ---

type mockAllocatorService struct {
	allocateFn func(ctx context.Context, role string, form map[string]any, addedByAdmin bool) (*service.AllocationResult, error)
}

func (m *mockAllocatorService) Allocate(ctx context.Context, role string, form map[string]any, addedByAdmin bool) (*service.AllocationResult, error) {
	return m.allocateFn(ctx, role, form, addedByAdmin)
}

func registerRequest(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrants/visitor", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("role")
	c.SetParamValues("visitor")
	return c, rec
}

func TestRegister_Created(t *testing.T) {
	svc := &mockAllocatorService{
		allocateFn: func(ctx context.Context, role string, form map[string]any, addedByAdmin bool) (*service.AllocationResult, error) {
			assert.Equal(t, "visitor", role)
			assert.Equal(t, "a@x.com", form["email"])
			assert.False(t, addedByAdmin)
			return &service.AllocationResult{ID: "v1", TicketCode: "123456"}, nil
		},
	}

	c, rec := registerRequest(`{"email":"a@x.com","full_name":"Ada"}`)
	h := NewRegistrationHandler(svc)
	err := h.Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.AllocationResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "v1", resp.ID)
	assert.Equal(t, "123456", resp.TicketCode)
	assert.False(t, resp.Existed)
}

func TestRegister_ExistingEmailReturnsOK(t *testing.T) {
	svc := &mockAllocatorService{
		allocateFn: func(ctx context.Context, role string, form map[string]any, addedByAdmin bool) (*service.AllocationResult, error) {
			return &service.AllocationResult{ID: "v1", TicketCode: "123456", Existed: true}, nil
		},
	}

	c, rec := registerRequest(`{"email":"a@x.com"}`)
	h := NewRegistrationHandler(svc)
	err := h.Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AllocationResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Existed)
}

func TestRegister_AddedByAdminExtracted(t *testing.T) {
	svc := &mockAllocatorService{
		allocateFn: func(ctx context.Context, role string, form map[string]any, addedByAdmin bool) (*service.AllocationResult, error) {
			assert.True(t, addedByAdmin)
			assert.NotContains(t, form, "added_by_admin")
			return &service.AllocationResult{ID: "v2", TicketCode: "654321"}, nil
		},
	}

	c, _ := registerRequest(`{"email":"b@x.com","added_by_admin":true}`)
	h := NewRegistrationHandler(svc)

	assert.NoError(t, h.Register(c))
}

func TestRegister_UnknownRole(t *testing.T) {
	svc := &mockAllocatorService{
		allocateFn: func(ctx context.Context, role string, form map[string]any, addedByAdmin bool) (*service.AllocationResult, error) {
			return nil, service.ErrUnknownRole
		},
	}

	c, _ := registerRequest(`{"email":"a@x.com"}`)
	h := NewRegistrationHandler(svc)
	err := h.Register(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestRegister_AllocationExhausted(t *testing.T) {
	svc := &mockAllocatorService{
		allocateFn: func(ctx context.Context, role string, form map[string]any, addedByAdmin bool) (*service.AllocationResult, error) {
			return nil, service.ErrAllocationExhausted
		},
	}

	c, _ := registerRequest(`{"email":"a@x.com"}`)
	h := NewRegistrationHandler(svc)
	err := h.Register(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
}
