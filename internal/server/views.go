package server

import (
	"time"

	"github.com/abhisek/disha/internal/aptitude"
	"github.com/abhisek/disha/internal/guidance"
	"github.com/abhisek/disha/internal/store"
)

type questionView struct {
	Index    int               `json:"index"`
	Text     string            `json:"text"`
	Category aptitude.Category `json:"category"`
}

type resultView struct {
	Stream aptitude.Category   `json:"stream"`
	Tally  []store.StreamScore `json:"tally"`
	Info   aptitude.Info       `json:"info"`
}

type sessionView struct {
	ID        string        `json:"id"`
	State     string        `json:"state"`
	Index     int           `json:"index"`
	Count     int           `json:"count"`
	Progress  float64       `json:"progress"`
	Question  *questionView `json:"question,omitempty"`
	Responses []int         `json:"responses"`
	Result    *resultView   `json:"result,omitempty"`
}

type resultRecordView struct {
	Sequence  int64               `json:"sequence"`
	Timestamp time.Time           `json:"timestamp"`
	SessionID string              `json:"session_id"`
	Stream    string              `json:"stream"`
	Tally     []store.StreamScore `json:"tally"`
	Responses []int               `json:"responses"`
	Info      *aptitude.Info      `json:"info,omitempty"`
}

func newResultView(res aptitude.Result) *resultView {
	return &resultView{
		Stream: res.Category,
		Tally:  guidance.StreamScores(res.Tally),
		Info:   res.Info,
	}
}

func newSessionView(r *guidance.Runner) sessionView {
	sess := r.Session()
	v := sessionView{
		ID:        r.ID(),
		State:     sess.State().String(),
		Index:     sess.Index(),
		Count:     sess.Bank().Count(),
		Progress:  sess.Progress(),
		Responses: sess.Responses(),
	}
	if q, err := sess.CurrentQuestion(); err == nil {
		v.Question = &questionView{Index: sess.Index(), Text: q.Text, Category: q.Category}
	}
	if res, ok := sess.Result(); ok {
		v.Result = newResultView(res)
	}
	return v
}

func (s *Server) newResultRecordView(rec store.ResultRecord) resultRecordView {
	v := resultRecordView{
		Sequence:  rec.Sequence,
		Timestamp: rec.Timestamp,
		SessionID: rec.SessionID,
		Stream:    rec.Stream,
		Tally:     rec.Tally,
		Responses: rec.Responses,
	}
	if info, ok := s.bank.Info(aptitude.Category(rec.Stream)); ok {
		v.Info = &info
	}
	return v
}
