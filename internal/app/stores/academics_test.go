package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgate/student-portal/internal/app/models"
)

func TestGroupAttendanceBySemester(t *testing.T) {
	records := []models.AttendanceRecord{
		{Subject: "Maths", Semester: 1, AttendedClasses: 8, TotalClasses: 10},
		{Subject: "Physics", Semester: 1, AttendedClasses: 5, TotalClasses: 5},
		{Subject: "DSA", Semester: 2, AttendedClasses: 9, TotalClasses: 12},
	}

	grouped := GroupAttendanceBySemester(records)
	require.Len(t, grouped, 2)

	sem1 := grouped[0]
	assert.Equal(t, 1, sem1.Semester)
	assert.Equal(t, 13, sem1.TotalAttended)
	assert.Equal(t, 15, sem1.TotalClasses)
	// 13/15 = 86.67%, rounded to nearest integer.
	assert.Equal(t, 87, sem1.OverallPercentage)
	assert.Len(t, sem1.Records, 2)

	sem2 := grouped[1]
	assert.Equal(t, 2, sem2.Semester)
	assert.Equal(t, 75, sem2.OverallPercentage)
}

func TestGroupAttendanceBySemester_Edges(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, GroupAttendanceBySemester(nil))
	})

	t.Run("zero total classes yields zero percent", func(t *testing.T) {
		grouped := GroupAttendanceBySemester([]models.AttendanceRecord{
			{Subject: "Elective", Semester: 1, AttendedClasses: 0, TotalClasses: 0},
		})
		require.Len(t, grouped, 1)
		assert.Equal(t, 0, grouped[0].OverallPercentage)
	})

	t.Run("semesters sorted ascending", func(t *testing.T) {
		grouped := GroupAttendanceBySemester([]models.AttendanceRecord{
			{Subject: "A", Semester: 4, AttendedClasses: 1, TotalClasses: 2},
			{Subject: "B", Semester: 2, AttendedClasses: 1, TotalClasses: 2},
			{Subject: "C", Semester: 3, AttendedClasses: 1, TotalClasses: 2},
		})
		require.Len(t, grouped, 3)
		assert.Equal(t, []int{2, 3, 4}, []int{grouped[0].Semester, grouped[1].Semester, grouped[2].Semester})
	})
}

func TestGroupMarksBySemester(t *testing.T) {
	records := []models.MarkRecord{
		{Subject: "Maths", Semester: 1, InternalMarks: 18, MaxMarks: 20},
		{Subject: "Physics", Semester: 1, InternalMarks: 15, MaxMarks: 20},
		{Subject: "DSA", Semester: 2, InternalMarks: 19, MaxMarks: 20},
	}

	grouped := GroupMarksBySemester(records)
	require.Len(t, grouped, 2)
	assert.Equal(t, 33.0, grouped[0].TotalMarks)
	assert.Equal(t, 40.0, grouped[0].MaxMarks)
	assert.Equal(t, 19.0, grouped[1].TotalMarks)
}
