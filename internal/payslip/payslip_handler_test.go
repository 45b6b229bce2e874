package payslip_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/somprasongd/hr-payroll-sub000/internal/payslip"
	paysliperrors "github.com/somprasongd/hr-payroll-sub000/internal/payslip/errors"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayslipService struct {
	createFn     func(ctx context.Context, branchID, actorID string, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error)
	getAllFn     func(ctx context.Context, branchID string, year, month int) ([]payslip.PayslipResponse, error)
	getByIDFn    func(ctx context.Context, branchID, id string) (payslip.PayslipResponse, error)
	updateFn     func(ctx context.Context, branchID, id string, req payslip.UpdatePayslipRequest) (payslip.PayslipResponse, error)
	setTaxModeFn func(ctx context.Context, branchID, id string, req payslip.SetTaxModeRequest) (payslip.PayslipResponse, error)
	approveFn    func(ctx context.Context, branchID, actorID, id string) (payslip.PayslipResponse, error)
	markPaidFn   func(ctx context.Context, branchID, id string) (payslip.PayslipResponse, error)
	deleteFn     func(ctx context.Context, branchID, id string) error
	runBatchFn   func(ctx context.Context, branchID, actorID string, req payslip.RunBatchRequest) (payslip.RunBatchResponse, error)
}

func (f *fakePayslipService) Create(ctx context.Context, branchID, actorID string, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error) {
	return f.createFn(ctx, branchID, actorID, req)
}
func (f *fakePayslipService) GetAll(ctx context.Context, branchID string, year, month int) ([]payslip.PayslipResponse, error) {
	return f.getAllFn(ctx, branchID, year, month)
}
func (f *fakePayslipService) GetByID(ctx context.Context, branchID, id string) (payslip.PayslipResponse, error) {
	return f.getByIDFn(ctx, branchID, id)
}
func (f *fakePayslipService) Update(ctx context.Context, branchID, id string, req payslip.UpdatePayslipRequest) (payslip.PayslipResponse, error) {
	return f.updateFn(ctx, branchID, id, req)
}
func (f *fakePayslipService) SetTaxMode(ctx context.Context, branchID, id string, req payslip.SetTaxModeRequest) (payslip.PayslipResponse, error) {
	return f.setTaxModeFn(ctx, branchID, id, req)
}
func (f *fakePayslipService) Approve(ctx context.Context, branchID, actorID, id string) (payslip.PayslipResponse, error) {
	return f.approveFn(ctx, branchID, actorID, id)
}
func (f *fakePayslipService) MarkPaid(ctx context.Context, branchID, id string) (payslip.PayslipResponse, error) {
	return f.markPaidFn(ctx, branchID, id)
}
func (f *fakePayslipService) Delete(ctx context.Context, branchID, id string) error {
	return f.deleteFn(ctx, branchID, id)
}
func (f *fakePayslipService) RunBatch(ctx context.Context, branchID, actorID string, req payslip.RunBatchRequest) (payslip.RunBatchResponse, error) {
	return f.runBatchFn(ctx, branchID, actorID, req)
}

func TestPayslipHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		branchID := uuid.New().String()
		actorID := uuid.New().String()
		employeeID := uuid.New().String()

		svc := &fakePayslipService{
			createFn: func(ctx context.Context, bid, aid string, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error) {
				assert.Equal(t, branchID, bid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, employeeID, req.EmployeeID)
				assert.Equal(t, "2026-04", req.Period)
				return payslip.PayslipResponse{
					ID:         uuid.New().String(),
					BranchID:   bid,
					EmployeeID: req.EmployeeID,
					Period:     req.Period,
					DocNo:      "PSL-000042",
					Status:     payslip.StatusPending,
					NetPay:     "28350.00",
				}, nil
			},
		}

		h := payslip.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + employeeID + `","period":"2026-04"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payslips", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("branch_id", branchID)
		c.Set("user_id_validated", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got payslip.PayslipResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, "PSL-000042", got.DocNo)
		assert.Equal(t, payslip.StatusPending, got.Status)
		assert.Equal(t, "28350.00", got.NetPay)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := payslip.NewHandler(&fakePayslipService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payslips", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative duplicate period returns conflict", func(t *testing.T) {
		svc := &fakePayslipService{
			createFn: func(ctx context.Context, branchID, actorID string, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error) {
				return payslip.PayslipResponse{}, paysliperrors.ErrPayslipExists
			},
		}
		h := payslip.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.New().String() + `","period":"2026-04"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payslips", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("branch_id", uuid.New().String())
		c.Set("user_id_validated", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
		assert.Equal(t, "a payslip already exists for this employee and period", env.Error.Message)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakePayslipService{
			createFn: func(ctx context.Context, branchID, actorID string, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error) {
				return payslip.PayslipResponse{}, errors.New("create failed")
			},
		}
		h := payslip.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"` + uuid.New().String() + `","period":"2026-04"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/payslips", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("branch_id", uuid.New().String())
		c.Set("user_id_validated", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}

func TestPayslipHandler_GetAll(t *testing.T) {
	t.Run("passes the period filter through", func(t *testing.T) {
		branchID := uuid.New().String()
		svc := &fakePayslipService{
			getAllFn: func(ctx context.Context, bid string, year, month int) ([]payslip.PayslipResponse, error) {
				assert.Equal(t, branchID, bid)
				assert.Equal(t, 2026, year)
				assert.Equal(t, 4, month)
				return []payslip.PayslipResponse{
					{ID: uuid.New().String(), BranchID: bid, Period: "2026-04", Status: payslip.StatusApproved},
				}, nil
			},
		}

		h := payslip.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/payslips?year=2026&month=4", nil)
		c.Set("branch_id", branchID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []payslip.PayslipResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, payslip.StatusApproved, got[0].Status)
	})
}

func TestPayslipHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		branchID := uuid.New().String()
		actorID := uuid.New().String()
		payslipID := uuid.New().String()

		svc := &fakePayslipService{
			approveFn: func(ctx context.Context, bid, aid, id string) (payslip.PayslipResponse, error) {
				assert.Equal(t, branchID, bid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, payslipID, id)
				return payslip.PayslipResponse{ID: id, BranchID: bid, Status: payslip.StatusApproved, ApprovedBy: &aid}, nil
			},
		}

		h := payslip.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payslips/"+payslipID+"/approve", nil)
		c.Params = []gin.Param{{Key: "id", Value: payslipID}}
		c.Set("branch_id", branchID)
		c.Set("user_id_validated", actorID)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got payslip.PayslipResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, payslip.StatusApproved, got.Status)
		assert.NotNil(t, got.ApprovedBy)
		assert.Equal(t, actorID, *got.ApprovedBy)
	})

	t.Run("negative already approved returns conflict", func(t *testing.T) {
		svc := &fakePayslipService{
			approveFn: func(ctx context.Context, branchID, actorID, id string) (payslip.PayslipResponse, error) {
				return payslip.PayslipResponse{}, paysliperrors.ErrApproveOnlyPending
			},
		}
		h := payslip.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payslips/"+uuid.New().String()+"/approve", nil)
		c.Params = []gin.Param{{Key: "id", Value: uuid.New().String()}}
		c.Set("branch_id", uuid.New().String())
		c.Set("user_id_validated", uuid.New().String())

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestPayslipHandler_RunBatch(t *testing.T) {
	t.Run("partial failure still returns 200 with the failure list", func(t *testing.T) {
		branchID := uuid.New().String()
		failedEmployee := uuid.New().String()

		svc := &fakePayslipService{
			runBatchFn: func(ctx context.Context, bid, aid string, req payslip.RunBatchRequest) (payslip.RunBatchResponse, error) {
				assert.Equal(t, "2026-04", req.Period)
				return payslip.RunBatchResponse{
					Period:       req.Period,
					SettledCount: 2,
					FailedCount:  1,
					Failures: []payslip.BatchFailure{
						{EmployeeID: failedEmployee, Reason: "employee is not active"},
					},
				}, nil
			},
		}

		h := payslip.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payslips/runs", strings.NewReader(`{"period":"2026-04"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("branch_id", branchID)
		c.Set("user_id_validated", uuid.New().String())

		h.RunBatch(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got payslip.RunBatchResponse
		err := json.Unmarshal(env.Data, &got)
		assert.NoError(t, err)
		assert.Equal(t, 2, got.SettledCount)
		assert.Equal(t, 1, got.FailedCount)
		assert.Len(t, got.Failures, 1)
		assert.Equal(t, failedEmployee, got.Failures[0].EmployeeID)
	})

	t.Run("negative missing period", func(t *testing.T) {
		h := payslip.NewHandler(&fakePayslipService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/payslips/runs", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.RunBatch(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}
