package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/dto"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
)

// DefaultExamGroupSize is the maximum number of students sitting one exam in
// one room.
const DefaultExamGroupSize = 15

// maxCoursesPerDay caps distinct courses examined on one calendar day unless
// the day has been reserved exclusively for a single course.
const maxCoursesPerDay = 2

// CourseEnrollment pairs a course with its actively enrolled student IDs.
type CourseEnrollment struct {
	Course   models.Course
	Students []string
}

// CourseScheduleAssignment reserves one room at one date+slot for one exam
// group of a course. Students carries the course's full enrolled list; the
// split into groups happens at persistence time.
type CourseScheduleAssignment struct {
	CourseID int
	Slot     models.SlotWithDate
	RoomID   int
	Students []string
}

// SchedulingPlan is the output of the plan generator: either a complete
// room/slot/day assignment for every course, or invalid with a message naming
// the course that could not be placed.
type SchedulingPlan struct {
	Valid       bool
	Message     string
	Assignments map[int][]CourseScheduleAssignment
	// CourseOrder records the greedy placement order so persistence walks
	// courses deterministically.
	CourseOrder []int
}

const planDayFormat = "2006-01-02"

type daySlotKey struct {
	Day    string
	SlotID int
}

// planState is the accumulator for one generation run. All of it is private
// to a single request; nothing is shared across invocations.
type planState struct {
	days       []string
	slotsByDay map[string][]models.SlotWithDate
	// roomPools holds an independent copy of the exam-room pool per
	// (day, slot); consuming rooms in one combination never affects another.
	roomPools map[daySlotKey][]models.Room
	// slotCourse marks a (day, slot) as taken by a course. Slots are
	// exclusive per day regardless of rooms left in them.
	slotCourse map[daySlotKey]int
	// coursesOnDay tracks which distinct courses already examine on a day.
	coursesOnDay map[string]map[int]bool
	// exclusiveDay maps a day to the course holding it exclusively.
	exclusiveDay map[string]int
	totalRooms   int
}

func newPlanState(slots []models.SlotWithDate, rooms []models.Room) *planState {
	state := &planState{
		slotsByDay:   make(map[string][]models.SlotWithDate),
		roomPools:    make(map[daySlotKey][]models.Room),
		slotCourse:   make(map[daySlotKey]int),
		coursesOnDay: make(map[string]map[int]bool),
		exclusiveDay: make(map[string]int),
		totalRooms:   len(rooms),
	}

	for _, slot := range slots {
		day := slot.Date.Format(planDayFormat)
		if _, seen := state.slotsByDay[day]; !seen {
			state.days = append(state.days, day)
		}
		state.slotsByDay[day] = append(state.slotsByDay[day], slot)

		pool := make([]models.Room, len(rooms))
		copy(pool, rooms)
		state.roomPools[daySlotKey{Day: day, SlotID: slot.SlotID}] = pool
	}

	sort.Strings(state.days)
	for day := range state.slotsByDay {
		daySlots := state.slotsByDay[day]
		sort.Slice(daySlots, func(i, j int) bool {
			return daySlots[i].SlotID < daySlots[j].SlotID
		})
	}

	return state
}

func (s *planState) dayOpenFor(day string, courseID int) bool {
	if owner, exclusive := s.exclusiveDay[day]; exclusive && owner != courseID {
		return false
	}
	occupants := s.coursesOnDay[day]
	if len(occupants) >= maxCoursesPerDay && !occupants[courseID] {
		return false
	}
	return true
}

// placeCourse finds the first (day, slot) able to host every exam group of the
// course at once and reserves the rooms. Returns false when no combination in
// the window can hold groupsNeeded rooms.
func (s *planState) placeCourse(course CourseEnrollment, groupsNeeded int) ([]CourseScheduleAssignment, bool) {
	for _, day := range s.days {
		if !s.dayOpenFor(day, course.Course.ID) {
			continue
		}
		for _, slot := range s.slotsByDay[day] {
			key := daySlotKey{Day: day, SlotID: slot.SlotID}
			if _, taken := s.slotCourse[key]; taken {
				continue
			}
			pool := s.roomPools[key]
			if len(pool) < groupsNeeded {
				continue
			}

			reserved := pool[:groupsNeeded]
			s.roomPools[key] = pool[groupsNeeded:]
			s.slotCourse[key] = course.Course.ID
			if s.coursesOnDay[day] == nil {
				s.coursesOnDay[day] = make(map[int]bool)
			}
			s.coursesOnDay[day][course.Course.ID] = true
			if groupsNeeded == s.totalRooms {
				s.exclusiveDay[day] = course.Course.ID
			}

			assignments := make([]CourseScheduleAssignment, 0, groupsNeeded)
			for _, room := range reserved {
				assignments = append(assignments, CourseScheduleAssignment{
					CourseID: course.Course.ID,
					Slot:     slot,
					RoomID:   room.ID,
					Students: course.Students,
				})
			}
			return assignments, true
		}
	}
	return nil, false
}

// GenerateSchedulingPlan assigns every course to a date, slot and set of rooms
// honouring slot exclusivity, the two-courses-per-day cap and exclusive days.
// The greedy scan is deterministic: larger courses place first, days scan
// chronologically, slots by ascending slot ID, rooms in catalogue order.
func GenerateSchedulingPlan(courses []CourseEnrollment, slots []models.SlotWithDate, rooms []models.Room, groupSize int) SchedulingPlan {
	if groupSize <= 0 {
		groupSize = DefaultExamGroupSize
	}

	plan := SchedulingPlan{
		Assignments: make(map[int][]CourseScheduleAssignment, len(courses)),
	}

	ordered := make([]CourseEnrollment, len(courses))
	copy(ordered, courses)
	sort.SliceStable(ordered, func(i, j int) bool {
		if len(ordered[i].Students) == len(ordered[j].Students) {
			return ordered[i].Course.ID < ordered[j].Course.ID
		}
		return len(ordered[i].Students) > len(ordered[j].Students)
	})

	state := newPlanState(slots, rooms)

	for _, course := range ordered {
		groupsNeeded := groupsNeededFor(len(course.Students), groupSize)
		assignments, placed := state.placeCourse(course, groupsNeeded)
		if !placed {
			plan.Valid = false
			plan.Message = fmt.Sprintf("course %q (%d students, %d rooms needed) cannot be scheduled within the requested window",
				course.Course.CourseName, len(course.Students), groupsNeeded)
			plan.Assignments = nil
			plan.CourseOrder = nil
			return plan
		}
		plan.Assignments[course.Course.ID] = assignments
		plan.CourseOrder = append(plan.CourseOrder, course.Course.ID)
	}

	plan.Valid = true
	return plan
}

func groupsNeededFor(enrolledCount, groupSize int) int {
	if enrolledCount <= 0 {
		return 0
	}
	return (enrolledCount + groupSize - 1) / groupSize
}

// chunkStudents splits a roster into groups of at most size, preserving order.
func chunkStudents(students []string, size int) [][]string {
	if size <= 0 || len(students) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(students)+size-1)/size)
	for start := 0; start < len(students); start += size {
		end := start + size
		if end > len(students) {
			end = len(students)
		}
		chunks = append(chunks, students[start:end])
	}
	return chunks
}

// buildSlotGrid cross-products the calendar days of [start, end] with the slot
// catalogue. Both bounds are inclusive.
func buildSlotGrid(start, end time.Time, slots []models.Slot) []models.SlotWithDate {
	start = truncateToDay(start)
	end = truncateToDay(end)

	var grid []models.SlotWithDate
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, slot := range slots {
			grid = append(grid, models.SlotWithDate{
				Date:      day,
				SlotID:    slot.ID,
				SlotName:  slot.SlotName,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
		}
	}
	return grid
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildCourseConflictGraph counts students shared by every course pair.
// The result is informational; placement never consults it.
func BuildCourseConflictGraph(courses []CourseEnrollment) []dto.CourseConflictEdge {
	ordered := make([]CourseEnrollment, len(courses))
	copy(ordered, courses)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Course.ID < ordered[j].Course.ID
	})

	var edges []dto.CourseConflictEdge
	for i := 0; i < len(ordered); i++ {
		members := make(map[string]bool, len(ordered[i].Students))
		for _, id := range ordered[i].Students {
			members[id] = true
		}
		for j := i + 1; j < len(ordered); j++ {
			shared := 0
			for _, id := range ordered[j].Students {
				if members[id] {
					shared++
				}
			}
			if shared > 0 {
				edges = append(edges, dto.CourseConflictEdge{
					CourseA:        ordered[i].Course.ID,
					CourseB:        ordered[j].Course.ID,
					SharedStudents: shared,
				})
			}
		}
	}
	return edges
}
