package catalog

import (
	"sync"

	"github.com/sahilchouksey/studyshare-api/dto"
)

// PageKind names a level of the navigation stack
type PageKind string

const (
	PageMain       PageKind = "main"
	PageUniversity PageKind = "university"
	PageFaculty    PageKind = "faculty"
	PageSubject    PageKind = "subject"
	PageNote       PageKind = "note"
)

// Page is a navigation state. University, faculty and subject pages carry
// the chain of selections down to themselves; a note page carries only the
// note, its ancestors are looked up by name when needed.
type Page struct {
	Kind       PageKind
	University *dto.University
	Faculty    *dto.FacultyNode
	Subject    *dto.SubjectRef
	Note       *dto.Note
}

// Crumb is one breadcrumb entry and the page it leads to
type Crumb struct {
	Label string
	Page  Page
}

// Tree supplies the current university tree
type Tree interface {
	Universities() []dto.University
}

// Navigator holds the current page. It starts on main and has no terminal
// state.
type Navigator struct {
	tree Tree

	mu      sync.Mutex
	current Page
}

func NewNavigator(tree Tree) *Navigator {
	return &Navigator{
		tree:    tree,
		current: Page{Kind: PageMain},
	}
}

func (n *Navigator) Current() Page {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigator) set(p Page) Page {
	n.mu.Lock()
	n.current = p
	n.mu.Unlock()
	return p
}

// Home returns to the main page from anywhere
func (n *Navigator) Home() Page {
	return n.set(Page{Kind: PageMain})
}

func (n *Navigator) OpenUniversity(u dto.University) Page {
	return n.set(Page{Kind: PageUniversity, University: &u})
}

func (n *Navigator) OpenFaculty(u dto.University, f dto.FacultyNode) Page {
	return n.set(Page{Kind: PageFaculty, University: &u, Faculty: &f})
}

func (n *Navigator) OpenSubject(u dto.University, f dto.FacultyNode, s dto.SubjectRef) Page {
	return n.set(Page{Kind: PageSubject, University: &u, Faculty: &f, Subject: &s})
}

func (n *Navigator) OpenNote(note dto.Note) Page {
	return n.set(Page{Kind: PageNote, Note: &note})
}

// chain resolves university, faculty and subject by name against the tree.
// Any of the results is nil when it cannot be found.
func (n *Navigator) chain(university, faculty, subject string) (*dto.University, *dto.FacultyNode, *dto.SubjectRef) {
	var uni *dto.University
	for _, u := range n.tree.Universities() {
		if u.Name == university {
			u := u
			uni = &u
			break
		}
	}
	if uni == nil {
		return nil, nil, nil
	}

	var fac *dto.FacultyNode
	for _, f := range uni.Faculties {
		if f.Name == faculty {
			f := f
			fac = &f
			break
		}
	}
	if fac == nil {
		return uni, nil, nil
	}

	for _, s := range fac.Subjects {
		if s.Name == subject {
			s := s
			return uni, fac, &s
		}
	}
	return uni, fac, nil
}

// Back pops to the parent level. The parent is re-derived from the tree by
// name; when it no longer resolves the navigator falls back to main.
func (n *Navigator) Back() Page {
	current := n.Current()

	switch current.Kind {
	case PageFaculty:
		uni, _, _ := n.chain(current.University.Name, "", "")
		if uni != nil {
			return n.OpenUniversity(*uni)
		}
	case PageSubject:
		uni, fac, _ := n.chain(current.University.Name, current.Faculty.Name, "")
		if uni != nil && fac != nil {
			return n.OpenFaculty(*uni, *fac)
		}
	case PageNote:
		uni, fac, sub := n.chain(current.Note.University, current.Note.Faculty, current.Note.Subject)
		if uni != nil && fac != nil && sub != nil {
			return n.OpenSubject(*uni, *fac, *sub)
		}
	}
	return n.Home()
}

// Breadcrumbs lists Home followed by every resolvable ancestor of the
// current page. Main has no breadcrumbs.
func (n *Navigator) Breadcrumbs() []Crumb {
	current := n.Current()
	if current.Kind == PageMain {
		return nil
	}

	uni, fac, sub := current.University, current.Faculty, current.Subject
	if current.Kind == PageNote {
		uni, fac, sub = n.chain(current.Note.University, current.Note.Faculty, current.Note.Subject)
	}

	crumbs := []Crumb{{Label: "Home", Page: Page{Kind: PageMain}}}
	if uni == nil {
		return crumbs
	}
	crumbs = append(crumbs, Crumb{Label: uni.Name, Page: Page{Kind: PageUniversity, University: uni}})
	if fac == nil {
		return crumbs
	}
	crumbs = append(crumbs, Crumb{Label: fac.Name, Page: Page{Kind: PageFaculty, University: uni, Faculty: fac}})
	if sub == nil {
		return crumbs
	}
	return append(crumbs, Crumb{Label: sub.Name, Page: Page{Kind: PageSubject, University: uni, Faculty: fac, Subject: sub}})
}
