package models

// ComputePercentage returns totalScore as a percentage of maxScore. A test
// with zero max marks yields 0 rather than a division by zero.
func ComputePercentage(totalScore float64, maxScore int) float64 {
	if maxScore <= 0 {
		return 0
	}
	return totalScore / float64(maxScore) * 100
}

// IsCorrectFromMarks derives the correctness flag from awarded marks. This
// mirrors the grading policy of the admin review workflow: any positive award
// marks the answer correct, independent of the selected option. Partial
// credit therefore always reads as correct.
func IsCorrectFromMarks(marksObtained float64) bool {
	return marksObtained > 0
}
