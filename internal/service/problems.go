package service

import (
	"math/rand"
	"sync"

	"github.com/shrey0196/beatcoders-dev/internal/models"
	"github.com/shrey0196/beatcoders-dev/pkg/judge"
)

// ProblemRegistry 배틀 문제 레지스트리 (인메모리)
type ProblemRegistry struct {
	mu       sync.RWMutex
	problems map[string]*models.Problem
	ids      []string
}

// NewProblemRegistry creates a registry seeded with the battle problem set.
func NewProblemRegistry() *ProblemRegistry {
	r := &ProblemRegistry{
		problems: make(map[string]*models.Problem),
	}

	for _, p := range battleProblems() {
		r.Register(p)
	}

	return r
}

// Register 문제 등록
func (r *ProblemRegistry) Register(p *models.Problem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.problems[p.ID]; !exists {
		r.ids = append(r.ids, p.ID)
	}
	r.problems[p.ID] = p
}

// Get 문제 조회
func (r *ProblemRegistry) Get(id string) (*models.Problem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.problems[id]
	return p, ok
}

// Random picks a problem uniformly at random for a new match.
func (r *ProblemRegistry) Random() *models.Problem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id := r.ids[rand.Intn(len(r.ids))]
	return r.problems[id]
}

// battleProblems 기본 출제 문제 세트
func battleProblems() []*models.Problem {
	return []*models.Problem{
		{
			ID:    "Two Sum",
			Title: "Two Sum",
			Description: "Given an array of integers nums and an integer target, return indices of the " +
				"two numbers such that they add up to target. You may assume that each input has exactly " +
				"one solution, and you may not use the same element twice.",
			StarterCode: "class Solution:\n    def twoSum(self, nums: List[int], target: int) -> List[int]:\n        pass",
			VisibleTestCases: []judge.TestCase{
				{Input: map[string]interface{}{"nums": []int{2, 7, 11, 15}, "target": 9}, Output: []int{0, 1}},
				{Input: map[string]interface{}{"nums": []int{3, 2, 4}, "target": 6}, Output: []int{1, 2}},
			},
			HiddenTestCases: []judge.TestCase{
				{Input: map[string]interface{}{"nums": []int{1, 2}, "target": 3}, Output: []int{0, 1}, Description: "Hidden Case 1"},
				{Input: map[string]interface{}{"nums": []int{1, 2, 3, 4}, "target": 7}, Output: []int{2, 3}, Description: "Hidden Case 2"},
				{Input: map[string]interface{}{"nums": []int{-1, -2, -3, -4}, "target": -7}, Output: []int{2, 3}, Description: "Hidden Case 3"},
			},
		},
		{
			ID:    "Valid Anagram",
			Title: "Valid Anagram",
			Description: "Given two strings s and t, return true if t is an anagram of s, " +
				"and false otherwise.",
			StarterCode: "class Solution:\n    def isAnagram(self, s: str, t: str) -> bool:\n        pass",
			VisibleTestCases: []judge.TestCase{
				{Input: map[string]interface{}{"s": "anagram", "t": "nagaram"}, Output: true},
				{Input: map[string]interface{}{"s": "rat", "t": "car"}, Output: false},
			},
			HiddenTestCases: []judge.TestCase{
				{Input: map[string]interface{}{"s": "", "t": ""}, Output: true, Description: "Hidden Case 1"},
				{Input: map[string]interface{}{"s": "a", "t": "b"}, Output: false, Description: "Hidden Case 2"},
				{Input: map[string]interface{}{"s": "ab", "t": "ba"}, Output: true, Description: "Hidden Case 3"},
				{Input: map[string]interface{}{"s": "rat", "t": "car"}, Output: false, Description: "Hidden Case 4"},
			},
		},
		{
			ID:    "Contains Duplicate",
			Title: "Contains Duplicate",
			Description: "Given an integer array nums, return true if any value appears at least " +
				"twice in the array, and return false if every element is distinct.",
			StarterCode: "class Solution:\n    def containsDuplicate(self, nums: List[int]) -> bool:\n        pass",
			VisibleTestCases: []judge.TestCase{
				{Input: map[string]interface{}{"nums": []int{1, 2, 3, 1}}, Output: true},
				{Input: map[string]interface{}{"nums": []int{1, 2, 3, 4}}, Output: false},
			},
			HiddenTestCases: []judge.TestCase{
				{Input: map[string]interface{}{"nums": []int{0, 4, 5, 0, 3, 6}}, Output: true, Description: "Hidden Case 1"},
				{Input: map[string]interface{}{"nums": []int{}}, Output: false, Description: "Hidden Case 2"},
				{Input: map[string]interface{}{"nums": []int{1}}, Output: false, Description: "Hidden Case 3"},
			},
		},
	}
}
