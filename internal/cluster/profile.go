package cluster

import (
	"github.com/hyperjump/careermatch/internal/career"
	"github.com/hyperjump/careermatch/internal/models"
	"github.com/hyperjump/careermatch/internal/skills"
)

// Profiles summarizes each populated cluster. Each member contributes at
// most memberCap of their highest-priority missing skills to the count.
func Profiles(members []Member, labels []int, names []career.Category, memberCap, topN int) []models.ClusterProfile {
	k := len(names)
	groups := make([][]int, k)
	for i, l := range labels {
		groups[l] = append(groups[l], i)
	}

	out := make([]models.ClusterProfile, 0, k)
	for c, idx := range groups {
		if len(idx) == 0 {
			continue
		}
		p := models.ClusterProfile{
			ClusterID:        c,
			Label:            names[c].String(),
			MemberCount:      len(idx),
			TopMissingSkills: []string{},
			Members:          make([]string, 0, len(idx)),
		}
		var gpa, att float64
		lists := make([][]string, 0, len(idx))
		for _, i := range idx {
			m := members[i]
			gpa += m.GPA
			att += m.Attendance
			p.Members = append(p.Members, m.ID)
			top := m.MissingByPriority
			if len(top) > memberCap {
				top = top[:memberCap]
			}
			lists = append(lists, top)
		}
		p.AvgGPA = skills.Round(gpa/float64(len(idx)), 2)
		p.AvgAttendance = skills.Round(att/float64(len(idx)), 2)
		for _, sc := range skills.Top(skills.Frequency(lists), topN) {
			p.TopMissingSkills = append(p.TopMissingSkills, sc.Skill)
		}
		out = append(out, p)
	}
	return out
}
