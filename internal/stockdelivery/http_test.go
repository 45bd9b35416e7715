package stockdelivery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-raka/kas-bank/internal/domain"
)

func TestGetStockAPI(t *testing.T) {
	quote := domain.StockQuote{
		Symbol:            "BBRI",
		Name:              "Bank Rakyat Indonesia (Persero) Tbk",
		Price:             3850,
		Change:            25,
		ChangePercent:     0.65,
		Volume:            "313.903.600,00",
		DayRange:          "3.820,00 - 3.910,00",
		FiftyTwoWeekRange: "3.360,00 - 4.870,00",
		LastUpdate:        "29/08/2026, 17.00.00",
		Source:            "BRI Website",
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stockService := NewMockService(ctrl)
	handler := NewHandler(stockService)

	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.GET("/stock/bbri", handler.Get)

	stockService.EXPECT().Quote(gomock.Any()).Times(1).Return(quote)

	recorder := httptest.NewRecorder()

	req, err := http.NewRequest(http.MethodGet, "/stock/bbri", nil)
	require.NoError(t, err)

	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"symbol":"BBRI"`)
	require.Contains(t, recorder.Body.String(), `"price":3850`)
	require.Contains(t, recorder.Body.String(), `"source":"BRI Website"`)
}
