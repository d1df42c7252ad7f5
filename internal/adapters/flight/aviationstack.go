// Package flight looks up flight arrival data through the AviationStack API.
package flight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"journey-planner-service/internal/domain"
	"journey-planner-service/internal/platform/obs"
	"journey-planner-service/internal/ports"
)

// The free AviationStack tier only serves plain HTTP.
const aviationStackBaseURL = "http://api.aviationstack.com"

type AviationStack struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewAviationStack(apiKey string) (*AviationStack, error) {
	if apiKey == "" {
		return nil, errors.New("aviationstack api key is empty")
	}
	return &AviationStack{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: aviationStackBaseURL,
	}, nil
}

type flightsResponse struct {
	Data []struct {
		Flight struct {
			IATA string `json:"iata"`
		} `json:"flight"`
		Departure struct {
			IATA string `json:"iata"`
		} `json:"departure"`
		Arrival struct {
			Airport   string `json:"airport"`
			IATA      string `json:"iata"`
			Estimated string `json:"estimated"`
			Scheduled string `json:"scheduled"`
		} `json:"arrival"`
	} `json:"data"`
}

// Lookup fetches the first matching record for a flight IATA code.
func (a *AviationStack) Lookup(ctx context.Context, flightIATA string) (_ ports.FlightInfo, err error) {
	defer obs.Time(ctx, "aviationstack.Lookup")(&err)
	defer func() { obs.ObserveProviderCall("aviationstack", "flight_lookup", err) }()

	code := strings.TrimSpace(flightIATA)
	if code == "" {
		return ports.FlightInfo{}, errors.New("flight code is empty")
	}

	q := url.Values{}
	q.Set("access_key", a.apiKey)
	q.Set("flight_iata", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/v1/flights?"+q.Encode(), nil)
	if err != nil {
		return ports.FlightInfo{}, fmt.Errorf("create flight request: %w", err)
	}

	resp, err := a.session.Do(req)
	if err != nil {
		return ports.FlightInfo{}, fmt.Errorf("fetch flight %q: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return ports.FlightInfo{}, fmt.Errorf("fetch flight %q: status %d: %s", code, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded flightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.FlightInfo{}, fmt.Errorf("decode flight response: %w", err)
	}

	if len(decoded.Data) == 0 {
		return ports.FlightInfo{}, domain.NewNotFound("flight " + code)
	}

	rec := decoded.Data[0]
	return ports.FlightInfo{
		FlightIATA:       rec.Flight.IATA,
		DepartureIATA:    rec.Departure.IATA,
		ArrivalAirport:   rec.Arrival.Airport,
		ArrivalIATA:      rec.Arrival.IATA,
		ArrivalEstimated: rec.Arrival.Estimated,
		ArrivalScheduled: rec.Arrival.Scheduled,
	}, nil
}
