// Package stockservice manages business logic layer of stock quotes.
//
// Quotes are scraped from the bank's public investor relations page. The
// upstream is outside our control, so any fetch or parse failure falls back
// to clearly labeled demo data instead of an error.
package stockservice

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/go-raka/kas-bank/internal/domain"
)

const (
	stockSymbol = "BBRI"
	companyName = "Bank Rakyat Indonesia (Persero) Tbk"

	investorPageURL = "https://bri.co.id/informasi-investor"
	fetchTimeout    = 15 * time.Second

	// The investor page serves the quote widget to browser user agents only.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// changePattern matches the combined change text, e.g. "+25(+0.65%)".
var changePattern = regexp.MustCompile(`([+\-])?(\d+\.?\d*)\(([+\-])?(\d+\.?\d*)%\)`)

// quoteFieldIDs are the element ids of the quote widget on the investor page.
var quoteFieldIDs = map[string]bool{
	"price":       true,
	"plusMinus":   true,
	"volAvg":      true,
	"range":       true,
	"fiveTwoWeek": true,
	"lastUpdate":  true,
}

// Service facilitates stock service layer logic.
type Service struct {
	client      *http.Client
	upstreamURL string
}

// New returns stock service struct fetching quotes from the investor page.
func New() *Service {
	return &Service{
		client:      &http.Client{Timeout: fetchTimeout},
		upstreamURL: investorPageURL,
	}
}

// Quote returns the current share price snapshot. Upstream failures never
// surface to the caller: the quote degrades to demo data instead.
func (s *Service) Quote(ctx context.Context) domain.StockQuote {
	l := zerolog.Ctx(ctx)

	quote, err := s.fetch(ctx)
	if err != nil {
		l.Info().Err(err).Msg("stock quote upstream unavailable, serving demo data")
		return demoQuote()
	}

	return quote
}

func (s *Service) fetch(ctx context.Context) (domain.StockQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.upstreamURL, nil)
	if err != nil {
		return domain.StockQuote{}, err
	}

	req.Header.Set("User-Agent", userAgent)

	res, err := s.client.Do(req)
	if err != nil {
		return domain.StockQuote{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return domain.StockQuote{}, errors.New("unexpected upstream status " + res.Status)
	}

	doc, err := html.Parse(res.Body)
	if err != nil {
		return domain.StockQuote{}, err
	}

	return parseQuote(doc)
}

func parseQuote(doc *html.Node) (domain.StockQuote, error) {
	fields := make(map[string]string)
	collectQuoteFields(doc, fields)

	price, err := parseIndonesianNumber(fields["price"])
	if err != nil || price == 0 {
		return domain.StockQuote{}, errors.New("no price on investor page")
	}

	quote := domain.StockQuote{
		Symbol:            stockSymbol,
		Name:              companyName,
		Price:             price,
		Volume:            fields["volAvg"],
		DayRange:          fields["range"],
		FiftyTwoWeekRange: fields["fiveTwoWeek"],
		LastUpdate:        fields["lastUpdate"],
		Source:            "BRI Website",
	}

	// The sign lives either on the absolute change or on the percentage.
	if m := changePattern.FindStringSubmatch(fields["plusMinus"]); m != nil {
		sign := 1.0
		if m[1] == "-" || (m[1] == "" && m[3] == "-") {
			sign = -1
		}

		change, _ := strconv.ParseFloat(m[2], 64)
		percent, _ := strconv.ParseFloat(m[4], 64)

		quote.Change = sign * change
		quote.ChangePercent = sign * percent
	}

	return quote, nil
}

func collectQuoteFields(n *html.Node, fields map[string]string) {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && quoteFieldIDs[attr.Val] {
				fields[attr.Val] = strings.TrimSpace(textContent(n))
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectQuoteFields(c, fields)
	}
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}

	return b.String()
}

// parseIndonesianNumber reads a number formatted with dot thousands
// separators and a comma decimal mark, e.g. "3.850,00".
func parseIndonesianNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	return strconv.ParseFloat(s, 64)
}

// demoQuote fabricates a plausible quote around the last known price level.
func demoQuote() domain.StockQuote {
	const basePrice = 3850.0

	variation := (rand.Float64() - 0.5) * 100

	return domain.StockQuote{
		Symbol:            stockSymbol,
		Name:              companyName,
		Price:             math.Round(basePrice + variation),
		Change:            math.Round(variation*100) / 100,
		ChangePercent:     math.Round(variation/basePrice*100*100) / 100,
		Volume:            "313.903.600,00",
		DayRange:          "3.820,00 - 3.910,00",
		FiftyTwoWeekRange: "3.360,00 - 4.870,00",
		LastUpdate:        time.Now().In(jakarta()).Format("02/01/2006, 15.04.05"),
		Source:            "Mock Data (Demo)",
	}
}

func jakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}

	return loc
}
