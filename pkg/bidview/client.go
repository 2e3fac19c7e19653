package bidview

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const userIDHeader = "X-User-ID"

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrStreamClosed     = errors.New("event stream closed by server")
)

// Event - событие ставки из SSE потока.
type Event struct {
	ID        int64     `json:"id"`
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	BidID     int64     `json:"bid_id"`
	PackageID string    `json:"package_id"`
	CourierID int64     `json:"courier_id"`
	Status    Status    `json:"status"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

type packageBidsResponse struct {
	PackageID   string     `json:"package_id"`
	Status      string     `json:"status"`
	BidDeadline *time.Time `json:"bid_deadline"`
	Bids        []struct {
		ID     int64  `json:"id"`
		Status Status `json:"status"`
	} `json:"bids"`
}

type pingResponse struct {
	ServerTime time.Time `json:"server_time"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client ходит в HTTP API сервиса торгов от имени пользователя userID.
type Client struct {
	baseURL    string
	userID     int64
	httpClient *http.Client
}

func NewClient(baseURL string, userID int64, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     userID,
		httpClient: httpClient,
	}
}

// Snapshot читает авторитетный список ставок посылки.
func (c *Client) Snapshot(ctx context.Context, packageID string) (Snapshot, error) {
	req, err := c.newRequest(ctx, "/packages/"+url.PathEscape(packageID)+"/bids")
	if err != nil {
		return Snapshot{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get bids: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, decodeError(resp)
	}

	var body packageBidsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Snapshot{}, fmt.Errorf("decode bids: %w", err)
	}

	snapshot := Snapshot{
		PackageID:     body.PackageID,
		PackageStatus: body.Status,
		BidDeadline:   body.BidDeadline,
		Bids:          make(map[int64]Status, len(body.Bids)),
	}
	for _, bid := range body.Bids {
		snapshot.Bids[bid.ID] = bid.Status
	}
	return snapshot, nil
}

// ClockSkew оценивает расхождение часов сервера с локальными: serverTime минус
// середина интервала запроса. Прибавляется к локальному времени перед Countdown.
func (c *Client) ClockSkew(ctx context.Context) (time.Duration, error) {
	req, err := c.newRequest(ctx, "/ping")
	if err != nil {
		return 0, err
	}

	sent := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ping: %w", err)
	}
	defer resp.Body.Close()
	received := time.Now()

	if resp.StatusCode != http.StatusOK {
		return 0, decodeError(resp)
	}

	var body pingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode ping: %w", err)
	}
	if body.ServerTime.IsZero() {
		return 0, nil
	}

	midpoint := sent.Add(received.Sub(sent) / 2)
	return body.ServerTime.Sub(midpoint), nil
}

// Stream подписывается на SSE поток посылки и вызывает fn на каждое событие.
// Блокируется до отмены ctx, ошибки fn или закрытия потока сервером (ErrStreamClosed).
func (c *Client) Stream(ctx context.Context, packageID string, fn func(Event) error) error {
	req, err := c.newRequest(ctx, "/packages/"+url.PathEscape(packageID)+"/stream")
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	return readEvents(resp.Body, fn)
}

func (c *Client) newRequest(ctx context.Context, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(userIDHeader, strconv.FormatInt(c.userID, 10))
	return req, nil
}

// readEvents разбирает text/event-stream: поле data может быть многострочным,
// комментарии (heartbeat) и поля id/event/retry пропускаются.
func readEvents(r io.Reader, fn func(Event) error) error {
	scanner := bufio.NewScanner(r)

	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			if data.Len() == 0 {
				continue
			}
			var event Event
			if err := json.Unmarshal([]byte(data.String()), &event); err != nil {
				return fmt.Errorf("decode event: %w", err)
			}
			data.Reset()
			if err := fn(event); err != nil {
				return err
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return ErrStreamClosed
}

func decodeError(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Code == "" {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return fmt.Errorf("%w: %d %s: %s", ErrUnexpectedStatus, resp.StatusCode, body.Code, body.Message)
}
