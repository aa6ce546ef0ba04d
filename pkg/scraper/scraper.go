// Package scraper extracts the current Mega-Sena draw from the public
// loterias landing page. It is the fallback data source when the results API
// is not used; its output contract matches the API path: a draw or a timeout
// failure with empty fields.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultPageURL is the Mega-Sena landing page.
const DefaultPageURL = "http://www.loterias.caixa.gov.br/wps/portal/loterias/landing/megasena"

const defaultTimeout = 10 * time.Second

var (
	drawDateRe   = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	drawNumberRe = regexp.MustCompile(`([0-9]{4,6}) `)
)

// Result is the scrape-path draw extraction. On timeout every field is empty
// and Exception carries the failure message.
type Result struct {
	Sorteio   int    `json:"sorteio" bson:"sorteio"`
	Data      string `json:"data" bson:"data"`
	Numeros   []int  `json:"numeros" bson:"numeros"`
	Exception string `json:"exception,omitempty" bson:"exception,omitempty"`
}

// TimeoutResult builds the empty-fields timeout shape of the contract.
func TimeoutResult() *Result {
	return &Result{Numeros: []int{}, Exception: "Timeout loading results page"}
}

// Scraper fetches and parses the landing page.
type Scraper struct {
	url    string
	client *http.Client
}

// New creates a Scraper. Empty arguments fall back to the defaults.
func New(url string, timeout time.Duration) *Scraper {
	if url == "" {
		url = DefaultPageURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Scraper{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// FetchLatest loads the landing page and extracts the current draw. A timeout
// yields the empty-fields Result, not an error; any other failure is an error.
func (s *Scraper) FetchLatest(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return TimeoutResult(), nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, s.url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return parsePage(doc)
}

// parsePage pulls the drawn numbers from the #ulDezenas list and the draw
// number and date from the result heading.
func parsePage(doc *goquery.Document) (*Result, error) {
	res := &Result{Numeros: []int{}}

	doc.Find("#ulDezenas li").Each(func(_ int, li *goquery.Selection) {
		if n, err := strconv.Atoi(strings.TrimSpace(li.Text())); err == nil {
			res.Numeros = append(res.Numeros, n)
		}
	})
	if len(res.Numeros) == 0 {
		return nil, errors.New("no drawn numbers found in page")
	}

	heading := strings.TrimSpace(doc.Find("#conteudoresultado h2 span").First().Text())
	res.Data = drawDateRe.FindString(heading)
	if m := drawNumberRe.FindStringSubmatch(heading); m != nil {
		res.Sorteio, _ = strconv.Atoi(m[1])
	}

	return res, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
