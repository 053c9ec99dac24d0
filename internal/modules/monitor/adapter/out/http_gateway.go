package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"evwatch/internal/modules/monitor/domain"
	monitorout "evwatch/internal/modules/monitor/port/out"
)

// HTTPAnalysisGateway talks to the anomaly-detection backend. A transport
// failure wraps domain.ErrBackendUnreachable; a non-success response becomes
// a *domain.ServerError carrying the backend's detail message, so callers can
// word their guidance differently for the two.
type HTTPAnalysisGateway struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPAnalysisGateway(baseURL string, timeout time.Duration, logger *zap.Logger) monitorout.AnalysisGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPAnalysisGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (g *HTTPAnalysisGateway) SubmitForAnalysis(ctx context.Context, filename string, file io.Reader) (domain.AnalysisReport, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("copy upload into form: %w", err)
	}
	if err := form.Close(); err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/predict/", &body)
	if err != nil {
		return domain.AnalysisReport{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("predict request failed", zap.String("filename", filename), zap.Error(err))
		return domain.AnalysisReport{}, fmt.Errorf("%w: %v", domain.ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.AnalysisReport{}, g.serverError(resp)
	}
	var report domain.AnalysisReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("decode predict response: %w", err)
	}
	g.logger.Info("analysis submitted",
		zap.String("filename", report.Filename),
		zap.Int("total_sessions", report.TotalSessions),
		zap.Int("anomalies_found", report.AnomaliesFound),
	)
	return report, nil
}

func (g *HTTPAnalysisGateway) FetchLogBatch(ctx context.Context) ([]domain.AnomalyRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/logs/", nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("logs request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, g.serverError(resp)
	}
	var payload struct {
		Anomalies []domain.AnomalyRecord `json:"anomalies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode logs response: %w", err)
	}
	g.logger.Info("log batch fetched", zap.Int("records", len(payload.Anomalies)))
	return payload.Anomalies, nil
}

func (g *HTTPAnalysisGateway) serverError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	g.logger.Warn("backend returned non-success",
		zap.Int("status", resp.StatusCode),
		zap.String("detail", payload.Detail),
	)
	return &domain.ServerError{StatusCode: resp.StatusCode, Detail: payload.Detail}
}
