// Package web serves the calculator form, its results and a small JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"sleepcalc/internal/calc"
	"sleepcalc/internal/form"
	"sleepcalc/internal/theme"
)

type Options struct {
	Version string
	// RateLimit is requests per minute per client IP; zero disables limiting.
	RateLimit int
}

type Server struct {
	tpl     *template.Template
	themes  *theme.Manager
	logger  *zap.Logger
	opts    Options
	handler http.Handler
}

// ResultView is one rendered candidate time.
type ResultView struct {
	Time         string `json:"time"`
	Label        string `json:"label"`
	Cycles       int    `json:"cycles"`
	SleepMinutes int    `json:"sleep_minutes"`
	Recommended  bool   `json:"recommended"`
}

type PageData struct {
	Mode        string
	Time        string
	FallAsleep  int
	SleepCycles int
	ClockLabel  string
	ResultNoun  string

	FallAsleepBounds  form.Bounds
	SleepCyclesBounds form.Bounds

	Theme  string
	Themes []string
	Return string

	Version string

	Error   string
	Results []ResultView

	// Share text: meta description when Results is set (for link previews).
	ShareDescription string
}

type apiResponse struct {
	Mode    calc.Mode    `json:"mode"`
	Anchor  string       `json:"anchor"`
	Label   string       `json:"label"`
	Results []ResultView `json:"results"`
}

func New(themes *theme.Manager, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		tpl:    template.Must(template.New("page").Parse(pageHTML)),
		themes: themes,
		logger: logger,
		opts:   opts,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /calc", s.handleCalc)
	mux.HandleFunc("POST /theme", s.handleTheme)
	mux.HandleFunc("GET /api/calculate", s.handleAPI)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	var h http.Handler = mux
	if opts.RateLimit > 0 {
		h = newIPRateLimiter(opts.RateLimit, logger).middleware(h)
	}
	s.handler = requestLogger(logger, h)
	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe runs until ctx is cancelled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("web server started", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("web server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st, err := form.Parse(q)
	data := s.pageData(r.Context(), st)
	if err != nil {
		data.Error = err.Error()
		s.render(w, http.StatusBadRequest, data)
		return
	}

	data.Return = r.URL.RequestURI()
	if q.Get("calc") == "1" {
		data.Results = results(st)
		data.ShareDescription = buildShareDescription(st, data.Results)
	}
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	st, err := form.Parse(r.PostForm)
	if err != nil {
		data := s.pageData(r.Context(), form.Default())
		data.Mode = strings.TrimSpace(r.PostForm.Get("mode"))
		data.Time = strings.TrimSpace(r.PostForm.Get("time"))
		data.Error = err.Error()
		s.render(w, http.StatusBadRequest, data)
		return
	}

	// The +/- buttons only move the anchor time; Calculate shows results.
	if raw := r.PostForm.Get("adjust"); raw != "" {
		delta, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "bad adjust value", http.StatusBadRequest)
			return
		}
		st = st.AdjustTime(delta)
		http.Redirect(w, r, buildCalcURL(st, false), http.StatusFound)
		return
	}
	if raw := r.PostForm.Get("step"); raw != "" {
		st = applyStep(st, raw)
		http.Redirect(w, r, buildCalcURL(st, false), http.StatusFound)
		return
	}

	// Redirect to GET with query params (only non-defaults) so the URL reflects the calculation.
	http.Redirect(w, r, buildCalcURL(st, true), http.StatusFound)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if err := s.themes.Set(r.Context(), r.PostForm.Get("theme")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, theme.ErrUnknownTheme) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("theme change failed", zap.Error(err))
		http.Error(w, err.Error(), status)
		return
	}
	http.Redirect(w, r, sameSiteReturn(r.PostForm.Get("return")), http.StatusFound)
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	st, err := form.Parse(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{
		Mode:    st.Mode,
		Anchor:  st.Time.String(),
		Label:   st.ClockLabel(),
		Results: results(st),
	})
}

func (s *Server) pageData(ctx context.Context, st form.State) PageData {
	// Another process (the CLI, a second server) may have changed the shared store.
	if err := s.themes.LoadSaved(ctx); err != nil {
		s.logger.Warn("refreshing theme failed", zap.Error(err))
	}
	return PageData{
		Mode:              string(st.Mode),
		Time:              st.Time.String(),
		FallAsleep:        st.FallAsleep,
		SleepCycles:       st.SleepCycles,
		ClockLabel:        st.ClockLabel(),
		ResultNoun:        st.Mode.ResultNoun(),
		FallAsleepBounds:  form.BoundsFor(form.FieldFallAsleep),
		SleepCyclesBounds: form.BoundsFor(form.FieldSleepCycles),
		Theme:             s.themes.Current(),
		Themes:            theme.Names,
		Return:            "/",
		Version:           s.opts.Version,
	}
}

func (s *Server) render(w http.ResponseWriter, status int, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tpl.Execute(w, data); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
	}
}

func results(st form.State) []ResultView {
	entries := calc.Calculate(st.Request())
	out := make([]ResultView, 0, len(entries))
	for _, e := range entries {
		out = append(out, ResultView{
			Time:         e.Time.String(),
			Label:        e.Label,
			Cycles:       e.Cycles,
			SleepMinutes: e.SleepMinutes,
			Recommended:  e.Cycles == st.Preferred(),
		})
	}
	return out
}

// applyStep handles "fall_asleep:+" style option buttons.
func applyStep(st form.State, raw string) form.State {
	field, dir, ok := strings.Cut(raw, ":")
	if !ok {
		return st
	}
	switch dir {
	case "+":
		return st.Increase(form.Field(field))
	case "-":
		return st.Decrease(form.Field(field))
	}
	return st
}

// buildCalcURL returns "/?..." and only adds params that differ from the defaults.
func buildCalcURL(st form.State, calculate bool) string {
	def := form.Default()
	v := url.Values{}
	if st.Mode != def.Mode {
		v.Set("mode", string(st.Mode))
	}
	if st.Time != def.Time {
		v.Set("time", st.Time.String())
	}
	if st.FallAsleep != def.FallAsleep {
		v.Set(string(form.FieldFallAsleep), strconv.Itoa(st.FallAsleep))
	}
	if st.SleepCycles != def.SleepCycles {
		v.Set(string(form.FieldSleepCycles), strconv.Itoa(st.SleepCycles))
	}
	if calculate {
		v.Set("calc", "1")
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// buildShareDescription returns the meta description for link previews when Results is set.
func buildShareDescription(st form.State, res []ResultView) string {
	times := make([]string, 0, len(res))
	for _, r := range res {
		times = append(times, r.Time)
	}
	return fmt.Sprintf("%s %s: %s (incl. %dm to fall asleep).",
		st.ClockLabel(), st.Time, strings.Join(times, ", "), st.FallAsleep)
}

// sameSiteReturn only allows local paths as redirect targets.
func sameSiteReturn(ret string) string {
	if !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.Contains(ret, `\`) {
		return "/"
	}
	return ret
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
