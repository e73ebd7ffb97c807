package catalog

import (
	"testing"

	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTree []dto.University

func (t staticTree) Universities() []dto.University { return t }

func labels(crumbs []Crumb) []string {
	out := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		out = append(out, c.Label)
	}
	return out
}

func TestNavigatorStartsOnMain(t *testing.T) {
	nav := NewNavigator(staticTree(treeFixture()))
	assert.Equal(t, PageMain, nav.Current().Kind)
	assert.Nil(t, nav.Breadcrumbs())
	assert.Equal(t, PageMain, nav.Back().Kind)
}

func TestNavigatorForwardAndBack(t *testing.T) {
	tree := treeFixture()
	nav := NewNavigator(staticTree(tree))

	uni := tree[0]
	fac := uni.Faculties[0]
	sub := fac.Subjects[1]

	nav.OpenUniversity(uni)
	nav.OpenFaculty(uni, fac)
	page := nav.OpenSubject(uni, fac, sub)
	assert.Equal(t, PageSubject, page.Kind)
	assert.Equal(t, []string{"Home", "Tehran University", "Engineering", "Calculus"}, labels(nav.Breadcrumbs()))

	back := nav.Back()
	require.Equal(t, PageFaculty, back.Kind)
	assert.Equal(t, "Engineering", back.Faculty.Name)

	back = nav.Back()
	require.Equal(t, PageUniversity, back.Kind)
	assert.Equal(t, "Tehran University", back.University.Name)

	assert.Equal(t, PageMain, nav.Back().Kind)
}

func TestNavigatorNoteDerivesAncestorsByName(t *testing.T) {
	nav := NewNavigator(staticTree(treeFixture()))

	nav.OpenNote(dto.Note{ID: 7, University: "Sharif University", Faculty: "Physics", Subject: "Mechanics"})
	crumbs := nav.Breadcrumbs()
	assert.Equal(t, []string{"Home", "Sharif University", "Physics", "Mechanics"}, labels(crumbs))
	assert.Equal(t, PageFaculty, crumbs[2].Page.Kind)

	back := nav.Back()
	require.Equal(t, PageSubject, back.Kind)
	assert.Equal(t, uint(103), back.Subject.ID)
	assert.Equal(t, "Physics", back.Faculty.Name)
}

func TestNavigatorFallsBackToMainWhenParentIsGone(t *testing.T) {
	nav := NewNavigator(staticTree(treeFixture()))

	nav.OpenNote(dto.Note{University: "Sharif University", Faculty: "Chemistry", Subject: "Organic"})
	assert.Equal(t, []string{"Home", "Sharif University"}, labels(nav.Breadcrumbs()))
	assert.Equal(t, PageMain, nav.Back().Kind)

	gone := dto.University{Name: "Closed University"}
	nav.OpenFaculty(gone, dto.FacultyNode{Name: "Arts"})
	assert.Equal(t, PageMain, nav.Back().Kind)
}

func TestNavigatorHomeFromAnywhere(t *testing.T) {
	tree := treeFixture()
	nav := NewNavigator(staticTree(tree))
	nav.OpenFaculty(tree[1], tree[1].Faculties[0])

	assert.Equal(t, PageMain, nav.Home().Kind)
	assert.Equal(t, PageMain, nav.Current().Kind)
}
