package transferdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-raka/kas-bank/internal/domain"
	"github.com/go-raka/kas-bank/internal/middleware"
	"github.com/go-raka/kas-bank/pkg/errorspkg"
	"github.com/go-raka/kas-bank/pkg/randompkg"
	"github.com/go-raka/kas-bank/pkg/tokenpkg"
)

func TestCreateTransferAPI(t *testing.T) {
	caller := domain.UserWithoutPassword{
		ID:       1,
		FullName: randompkg.Owner(),
		Email:    randompkg.Email(),
	}

	toAccount := randompkg.AccountNumber()
	amount := "100"

	arg := domain.TransferParams{
		ToAccountNumber: toAccount,
		Amount:          amount,
		Description:     "lunch",
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transferService := NewMockService(ctrl)
	userService := NewMockUserService(ctrl)
	handler := NewHandler(transferService, userService)

	gin.SetMode(gin.TestMode)
	server := gin.New()
	url := "/transfer"

	server.Use(middleware.AuthMiddleware(tokenMaker))
	server.POST(url, handler.Create)

	expectCaller := func() {
		userService.EXPECT().GetByEmail(gomock.Any(), gomock.Eq(caller.Email)).
			Times(1).Return(caller, nil)
	}

	testCases := []struct {
		name          string
		requestBody   gin.H
		setupAuth     func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		buildStubs    func()
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "NoAuthorization",
			requestBody: gin.H{
				"to_account": toAccount,
				"amount":     amount,
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
			},
			buildStubs: func() {
				transferService.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "InvalidBindToAccount",
			requestBody: gin.H{
				"to_account": "not-a-number",
				"amount":     amount,
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				transferService.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "MissingAmount",
			requestBody: gin.H{
				"to_account": toAccount,
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				transferService.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "CallerLookupError",
			requestBody: gin.H{
				"to_account":  toAccount,
				"amount":      amount,
				"description": "lunch",
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				userService.EXPECT().GetByEmail(gomock.Any(), gomock.Eq(caller.Email)).
					Times(1).Return(domain.UserWithoutPassword{}, domain.ErrUserNotFound)
				transferService.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name: "InvalidAmount",
			requestBody: gin.H{
				"to_account":  toAccount,
				"amount":      "-5",
				"description": "lunch",
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				expectCaller()

				badArg := arg
				badArg.Amount = "-5"

				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(caller.ID), gomock.Eq(badArg)).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrInvalidAmount)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "SelfTransfer",
			requestBody: gin.H{
				"to_account":  toAccount,
				"amount":      amount,
				"description": "lunch",
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				expectCaller()

				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(caller.ID), gomock.Eq(arg)).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrSelfTransfer)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "InsufficientBalance",
			requestBody: gin.H{
				"to_account":  toAccount,
				"amount":      amount,
				"description": "lunch",
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				expectCaller()

				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(caller.ID), gomock.Eq(arg)).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrInsufficientBalance)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "RecipientNotFound",
			requestBody: gin.H{
				"to_account":  toAccount,
				"amount":      amount,
				"description": "lunch",
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				expectCaller()

				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(caller.ID), gomock.Eq(arg)).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrRecipientNotFound)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name: "CreditFailedAfterDebit",
			requestBody: gin.H{
				"to_account":  toAccount,
				"amount":      amount,
				"description": "lunch",
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				expectCaller()

				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(caller.ID), gomock.Eq(arg)).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrCreditFailedAfterDebit)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
				// The caller never sees the reconciliation detail.
				require.Contains(t, recorder.Body.String(), errorspkg.ErrInternal.Error())
				require.NotContains(t, recorder.Body.String(), domain.ErrCreditFailedAfterDebit.Error())
			},
		},
		{
			name: "InternalError",
			requestBody: gin.H{
				"to_account":  toAccount,
				"amount":      amount,
				"description": "lunch",
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				expectCaller()

				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(caller.ID), gomock.Eq(arg)).
					Times(1).
					Return(domain.TransferTxResult{}, errorspkg.ErrInternal)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
		{
			name: "OK",
			requestBody: gin.H{
				"to_account":  toAccount,
				"amount":      amount,
				"description": "lunch",
			},
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				expectCaller()

				transferService.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(caller.ID), gomock.Eq(arg)).
					Times(1).
					Return(domain.TransferTxResult{
						Transaction: domain.Transaction{ID: 1, Amount: amount, Status: domain.StatusSuccess, InitiatedBy: &caller.ID},
					}, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Contains(t, recorder.Body.String(), domain.StatusSuccess)
				// The initiator serializes as a plain nullable number.
				require.Contains(t, recorder.Body.String(), `"initiated_by":1`)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			tc.buildStubs()

			recorder := httptest.NewRecorder()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
			require.NoError(t, err)

			tc.setupAuth(t, req, tokenMaker)
			server.ServeHTTP(recorder, req)
			tc.checkResponse(recorder)
		})
	}
}

func TestListTransactionsAPI(t *testing.T) {
	caller := domain.UserWithoutPassword{
		ID:       1,
		FullName: randompkg.Owner(),
		Email:    randompkg.Email(),
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transferService := NewMockService(ctrl)
	userService := NewMockUserService(ctrl)
	handler := NewHandler(transferService, userService)

	gin.SetMode(gin.TestMode)
	server := gin.New()
	url := "/transactions"

	server.Use(middleware.AuthMiddleware(tokenMaker))
	server.GET(url, handler.List)

	transactions := []domain.Transaction{
		{ID: 2, Amount: "300", Status: domain.StatusSuccess},
		{ID: 1, Amount: "500", Status: domain.StatusFailed},
	}

	testCases := []struct {
		name          string
		query         string
		setupAuth     func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		buildStubs    func()
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name:  "NoAuthorization",
			query: "",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
			},
			buildStubs: func() {
				transferService.EXPECT().ListTransactions(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name:  "InvalidLimit",
			query: "?limit=-1",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				transferService.EXPECT().ListTransactions(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name:  "AccountNotFound",
			query: "?limit=10",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				userService.EXPECT().GetByEmail(gomock.Any(), gomock.Eq(caller.Email)).
					Times(1).Return(caller, nil)
				transferService.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(caller.ID), gomock.Eq(int32(10))).
					Times(1).Return(nil, domain.ErrSenderNotFound)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name:  "OK",
			query: "?limit=10",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				middleware.AddAuthorization(t, request, tokenMaker, middleware.AuthTypeBearer, caller.Email, time.Minute)
			},
			buildStubs: func() {
				userService.EXPECT().GetByEmail(gomock.Any(), gomock.Eq(caller.Email)).
					Times(1).Return(caller, nil)
				transferService.EXPECT().
					ListTransactions(gomock.Any(), gomock.Eq(caller.ID), gomock.Eq(int32(10))).
					Times(1).Return(transactions, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				require.Contains(t, recorder.Body.String(), `"transactions"`)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			tc.buildStubs()

			recorder := httptest.NewRecorder()

			req, err := http.NewRequest(http.MethodGet, url+tc.query, nil)
			require.NoError(t, err)

			tc.setupAuth(t, req, tokenMaker)
			server.ServeHTTP(recorder, req)
			tc.checkResponse(recorder)
		})
	}
}
