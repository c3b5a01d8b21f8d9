package recurring

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/workspace-server/internal/service"
)

type mockRuleSkipper struct {
	mock.Mock
}

func (m *mockRuleSkipper) SkipNext(ctx context.Context, workspaceID, userID, ruleID uuid.UUID) (time.Time, error) {
	args := m.Called(ctx, workspaceID, userID, ruleID)
	return args.Get(0).(time.Time), args.Error(1)
}

func newSkipTestAPI(t *testing.T, svc ruleSkipper) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewSkipNextHandler(svc).Register(api)
	return api
}

func TestHTTP_SkipNext_Success(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	ruleID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockRuleSkipper)
	mockSvc.On("SkipNext", mock.Anything, workspaceID, userID, ruleID).
		Return(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), nil)

	resp := newSkipTestAPI(t, mockSvc).Post("/v1/recurring/"+ruleID.String()+"/skip",
		identityHeaders(workspaceID, userID)...)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SkipNextResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2024-08-01", body.NextDate)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_SkipNext_NotFound(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV4())
	userID := uuid.Must(uuid.NewV4())
	ruleID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockRuleSkipper)
	mockSvc.On("SkipNext", mock.Anything, workspaceID, userID, ruleID).
		Return(time.Time{}, service.ErrNotFound)

	resp := newSkipTestAPI(t, mockSvc).Post("/v1/recurring/"+ruleID.String()+"/skip",
		identityHeaders(workspaceID, userID)...)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
