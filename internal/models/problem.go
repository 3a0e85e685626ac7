package models

import "github.com/shrey0196/beatcoders-dev/pkg/judge"

// Problem 배틀에 출제되는 코딩 문제
type Problem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StarterCode string `json:"starterCode"`

	// 보이는 케이스는 클라이언트에 전달되고, 히든 케이스는 채점에만 쓰인다.
	VisibleTestCases []judge.TestCase `json:"visibleTestCases"`
	HiddenTestCases  []judge.TestCase `json:"-"`
}

// AllTestCases returns visible cases followed by hidden cases, the order
// submissions are judged in.
func (p *Problem) AllTestCases() []judge.TestCase {
	all := make([]judge.TestCase, 0, len(p.VisibleTestCases)+len(p.HiddenTestCases))
	all = append(all, p.VisibleTestCases...)
	all = append(all, p.HiddenTestCases...)
	return all
}

// ProblemSummary 클라이언트에 보내는 문제 (히든 케이스 제외)
type ProblemSummary struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	StarterCode      string           `json:"starterCode"`
	VisibleTestCases []judge.TestCase `json:"visibleTestCases"`
}

// Summary 문제 요약 생성
func (p *Problem) Summary() ProblemSummary {
	return ProblemSummary{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		StarterCode:      p.StarterCode,
		VisibleTestCases: p.VisibleTestCases,
	}
}
