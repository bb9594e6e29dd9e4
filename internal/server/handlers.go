// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/json"
	"errors"
	"html/template"
	"mime"
	"net/http"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/termfolio/internal/export"
	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/prefs"
	"github.com/jeranaias/termfolio/internal/session"
	"github.com/jeranaias/termfolio/internal/ui/styles"
	"github.com/jeranaias/termfolio/internal/util"
)

// =============================================================================
// REQUEST / RESPONSE TYPES
// =============================================================================

type inputRequest struct {
	Input string `json:"input"`
}

type historyRequest struct {
	Direction string `json:"direction" binding:"required,oneof=prev next"`
	Input     string `json:"input"`
}

type inputResponse struct {
	Input string `json:"input"`
}

type execResponse struct {
	Lines    []string  `json:"lines"`
	Clear    bool      `json:"clear"`
	Prefs    themeView `json:"prefs"`
	Download string    `json:"download,omitempty"`
}

// themeView is what the page needs to apply preferences.
type themeView struct {
	Dark     bool              `json:"dark"`
	Theme    string            `json:"theme"`
	Size     string            `json:"size"`
	MaxWidth string            `json:"maxWidth"`
	Colors   map[string]string `json:"colors"`
}

func newThemeView(p prefs.Preferences) themeView {
	pal, _ := styles.LookupPalette(p.Theme)
	size, _ := styles.LookupSize(p.Size)
	pick := func(c lipgloss.AdaptiveColor) string { return styles.Pick(c, p.Dark) }

	return themeView{
		Dark:     p.Dark,
		Theme:    p.Theme,
		Size:     p.Size,
		MaxWidth: size.MaxWidth,
		Colors: map[string]string{
			"background": pick(pal.Background),
			"text":       pick(pal.Text),
			"panel":      pick(pal.Panel),
			"prompt":     pick(pal.Prompt),
			"secondary":  pick(pal.Secondary),
			"accent":     pick(pal.Accent),
			"output":     pick(styles.Green),
			"error":      pick(styles.Red),
			"input":      pick(styles.Yellow),
			"highlight":  pick(styles.Cyan),
		},
	}
}

type pageData struct {
	Name   string
	Title  string
	Prompt string
	Lines  []template.HTML
	Dark   bool
	Theme  string
	Size   string
	State  string
}

func htmlLines(lines []markup.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = markup.HTML(l)
	}
	return out
}

// =============================================================================
// VISITORS
// =============================================================================

// visitor resolves the caller's session from its cookie, creating one and
// setting the cookie when needed.
func (s *Server) visitor(c *gin.Context) *session.Visitor {
	id, _ := c.Cookie(CookieName)
	v, created := s.visitors.Acquire(id)
	if created || v.ID() != id {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, v.ID(), cookieMaxAge, "/", "", c.Request.TLS != nil, true)
	}
	return v
}

// cleanInput NFC-normalises input, drops control characters, and bounds
// it to the configured rune count.
func (s *Server) cleanInput(input string) string {
	input = norm.NFC.String(input)
	input = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
	return util.TruncateRunes(input, s.cfg.MaxInput)
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleIndex(c *gin.Context) {
	var data pageData
	s.visitor(c).Do(func(sess *session.Session) {
		r := sess.Resume()
		p := sess.Prefs()
		state, _ := json.Marshal(newThemeView(p))

		lines := make([]template.HTML, 0, len(sess.Lines()))
		for _, l := range sess.Lines() {
			lines = append(lines, template.HTML(markup.HTML(l)))
		}
		data = pageData{
			Name:   r.Name,
			Title:  r.Title,
			Prompt: sess.Prompt(),
			Lines:  lines,
			Dark:   p.Dark,
			Theme:  p.Theme,
			Size:   p.Size,
			State:  string(state),
		}
	})
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) handleExec(c *gin.Context) {
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	input := s.cleanInput(req.Input)

	var resp execResponse
	s.visitor(c).Do(func(sess *session.Session) {
		before := len(sess.Lines())
		sess.SetInput(input)
		res := sess.Submit()

		lines := sess.Lines()
		if res.Clear {
			resp.Clear = true
		} else {
			lines = lines[before:]
		}
		resp.Lines = htmlLines(lines)
		resp.Prefs = newThemeView(sess.Prefs())
		if res.Download != nil {
			resp.Download = "/download/" + res.Download.Target
		}
	})
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleComplete(c *gin.Context) {
	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	input := s.cleanInput(req.Input)

	var resp inputResponse
	s.visitor(c).Do(func(sess *session.Session) {
		// Repeated tabs send back the candidate just applied, which must
		// continue the cycle rather than restart it.
		if input != sess.Input() {
			sess.SetInput(input)
		}
		sess.Complete()
		resp.Input = sess.Input()
	})
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHistory(c *gin.Context) {
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "direction must be prev or next")
		return
	}
	input := s.cleanInput(req.Input)

	var resp inputResponse
	s.visitor(c).Do(func(sess *session.Session) {
		if input != sess.Input() {
			sess.SetInput(input)
		}
		if req.Direction == "prev" {
			sess.HistoryPrev()
		} else {
			sess.HistoryNext()
		}
		resp.Input = sess.Input()
	})
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDownload(c *gin.Context) {
	f, err := export.Target(s.cfg.Resume.Current(), c.Param("target"), s.cfg.DownloadFile)
	if errors.Is(err, export.ErrNotFound) {
		writeError(c, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		s.logger.Error("download failed", "target", c.Param("target"), "error", err)
		writeError(c, http.StatusInternalServerError, "download unavailable")
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	c.Data(http.StatusOK, f.ContentType, f.Data)
}

func (s *Server) handleHealth(c *gin.Context) {
	st := s.visitors.GetStatus()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  s.cfg.Version,
		"resume":   s.cfg.Resume.Current().Name,
		"sessions": st.Sessions,
		"oldest":   st.Oldest,
	})
}

func writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
