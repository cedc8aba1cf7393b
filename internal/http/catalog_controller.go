package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bookflow/lms/internal/app"
	"github.com/bookflow/lms/internal/auth"
	"github.com/bookflow/lms/internal/catalog"
	"github.com/bookflow/lms/internal/entities"
)

type CatalogController struct {
	app *app.App
}

func NewCatalogController(application *app.App) *CatalogController {
	return &CatalogController{app: application}
}

// searchScope maps the optional ?scope= parameter. Students see programme
// shelves and collections by default; the teacher pool needs a teacher or
// admin session.
func searchScope(c *gin.Context) catalog.Scope {
	switch c.Query("scope") {
	case "programmes":
		return catalog.ScopeProgrammes
	case "teacher":
		return catalog.ScopeTeacher
	case "collections":
		return catalog.ScopeCollections
	}
	return catalog.ScopeAll
}

func (controller *CatalogController) GetProgrammes(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"categories":      catalog.Categories,
		"general_library": catalog.GeneralLibrary,
	})
}

func (controller *CatalogController) GetProgrammeBooks(c *gin.Context) {
	programme := c.Query("programme")
	if programme == "" {
		// Default to the caller's own programme when they have one
		if user, _, err := controller.app.User(auth.GetUserID(c)); err == nil && user.Programme != "" {
			programme = user.Programme
		} else {
			programme = catalog.GeneralLibrary
		}
	}
	books := controller.app.ProgrammeBooks(programme)
	c.IndentedJSON(http.StatusOK, gin.H{
		"programme": programme,
		"books":     books,
		"count":     len(books),
	})
}

func (controller *CatalogController) GetTeacherBooks(c *gin.Context) {
	books := controller.app.TeacherBooks()
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *CatalogController) GetCollections(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"collections": controller.app.Collections()})
}

func (controller *CatalogController) GetCollectionItems(c *gin.Context) {
	name := c.Param("name")
	items := controller.app.CollectionItems(name)
	if len(items) == 0 {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "collection not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"collection": name,
		"items":      items,
		"count":      len(items),
	})
}

func (controller *CatalogController) GetSubjects(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"subjects": controller.app.Subjects()})
}

func (controller *CatalogController) Search(c *gin.Context) {
	term := c.Query("q")
	subject := c.Query("subject")
	if term == "" && subject == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "q or subject query parameter is required"})
		return
	}
	scope := searchScope(c)
	if scope == catalog.ScopeTeacher && auth.GetUserRole(c) == entities.RoleStudent {
		c.IndentedJSON(http.StatusForbidden, gin.H{"error": "teacher catalog is not visible to students"})
		return
	}

	var books []*entities.Book
	switch {
	case term == "":
		books = controller.app.FilterBySubject(subject, scope)
	case subject == "":
		books = controller.app.Search(term, scope)
	default:
		for _, book := range controller.app.Search(term, scope) {
			if strings.EqualFold(book.Subject, subject) {
				books = append(books, book)
			}
		}
	}

	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *CatalogController) GetBook(c *gin.Context) {
	book, ok := controller.app.FindBook(c.Param("id"))
	if !ok {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}
