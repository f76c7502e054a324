package service

import (
	"math"
	"quizdom_backend/internal/model"
	"strconv"
	"strings"
)

// NormalizeAnswer 归一化答案文本：去除首尾空白并小写化。
// 仅用于容忍客户端格式差异，归一化后必须完全相等，不做模糊匹配。
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GradeQuiz 按题目集合判分。answers 以题目 id 的十进制字符串为键；
// 缺失的作答计为错误，不报错。total 恒为题目总数，与作答数量无关。
func GradeQuiz(questions []model.Question, answers map[string]string) (correct, total int) {
	total = len(questions)

	for _, q := range questions {
		marked, ok := answers[strconv.FormatUint(uint64(q.ID), 10)]
		if !ok {
			continue
		}
		if NormalizeAnswer(marked) == NormalizeAnswer(q.Answer) {
			correct++
		}
	}

	return correct, total
}

// ScorePercentage 百分比得分，保留两位小数，0.5 向绝对值更大方向进位
// （math.Round 语义）。total 必须大于 0，由调用方保证。
func ScorePercentage(correct, total int) float64 {
	pct := 100.0 * float64(correct) / float64(total)
	return math.Round(pct*100) / 100
}
