package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sushihentaime/folio/internal/adminservice"
	"github.com/sushihentaime/folio/internal/analyticsservice"
	"github.com/sushihentaime/folio/internal/common"
	"github.com/sushihentaime/folio/internal/newsletterservice"
	"github.com/sushihentaime/folio/internal/postservice"
)

func readQuery(r *http.Request) postservice.Query {
	qs := r.URL.Query()
	return postservice.Query{
		Search:   qs.Get("q"),
		Category: qs.Get("category"),
	}
}

// listPostsHandler serves the research listing: the posts matching q and category, and
// the category choices taken from every post.
func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.postService.ListPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	q := readQuery(r)
	env := envelope{
		"posts":      postservice.Filter(posts, q),
		"categories": postservice.Categories(posts),
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	post, err := app.postService.GetPost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.tracker.Track(r.Context(), analyticsservice.BlogView(post.Title, post.ID))

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post, "view": postservice.Render(post)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.postService.ListPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"categories": postservice.Categories(posts)}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type subscribeRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

func (app *application) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var input subscribeRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	result, err := app.newsletter.Subscribe(r.Context(), input.Email, input.FirstName)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		case errors.Is(err, newsletterservice.ErrSubscriptionFailed):
			app.writeResult(w, r, http.StatusBadRequest, result)
		case errors.Is(err, newsletterservice.ErrUnavailable):
			app.logError(r, err)
			app.writeResult(w, r, http.StatusBadGateway, result)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.tracker.Track(r.Context(), analyticsservice.NewsletterSignup())
	app.writeResult(w, r, http.StatusOK, result)
}

func (app *application) writeResult(w http.ResponseWriter, r *http.Request, status int, result newsletterservice.Result) {
	err := app.writeJSON(w, status, envelope{"success": result.Success, "message": result.Message}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type eventRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Label    string `json:"label"`
	Value    *int64 `json:"value"`
	Path     string `json:"path"`
	Title    string `json:"title"`
}

// trackEventHandler accepts page views and custom events reported by the browser.
func (app *application) trackEventHandler(w http.ResponseWriter, r *http.Request) {
	var input eventRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	v := common.NewValidator()
	v.Check(v.NotBlank(input.Name), "name", "must be provided")
	v.Check(v.MaxRunes(input.Name, 100), "name", "must not be more than 100 characters long")
	v.Check(v.MaxRunes(input.Category, 100), "category", "must not be more than 100 characters long")
	v.Check(v.MaxRunes(input.Label, 500), "label", "must not be more than 500 characters long")
	v.Check(v.MaxRunes(input.Path, 2048), "path", "must not be more than 2048 characters long")
	v.Check(v.MaxRunes(input.Title, 500), "title", "must not be more than 500 characters long")
	if !v.Valid() {
		app.failedValidationErrorResponse(w, r, v.Errors)
		return
	}

	app.tracker.Track(r.Context(), analyticsservice.Event{
		Name:     input.Name,
		Category: input.Category,
		Label:    input.Label,
		Value:    input.Value,
		Path:     input.Path,
		Title:    input.Title,
	})

	err = app.writeJSON(w, http.StatusAccepted, envelope{"message": "event accepted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// adminLoginHandler opens an admin session and hands back the posts to manage.
func (app *application) adminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	session, err := app.gate.Login(input.Password)
	if err != nil {
		switch {
		case errors.Is(err, adminservice.ErrInvalidSecret):
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	posts, err := app.postService.ListPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"session": session, "posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) adminLogoutHandler(w http.ResponseWriter, r *http.Request) {
	session := app.contextGetSession(r)
	app.gate.Logout(session.Token)

	err := app.writeJSON(w, http.StatusOK, envelope{"state": adminservice.LoggedOut.String()}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) adminSessionHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{"state": adminservice.LoggedOut.String()}
	if session := app.contextGetSession(r); session != nil {
		env = envelope{"state": adminservice.LoggedIn.String(), "session": session}
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) adminListPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.postService.SearchPosts(r.Context(), readQuery(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var input postservice.PostInput

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	post, err := app.postService.CreatePost(r.Context(), &input)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/posts/%d", post.ID))

	err = app.writeJSON(w, http.StatusCreated, envelope{"post": post}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	var input postservice.PostPatch

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	post, err := app.postService.UpdatePost(r.Context(), id, &input)
	if err != nil {
		var validationErr common.ValidationError
		switch {
		case errors.Is(err, postservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &validationErr):
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	deleted, err := app.postService.DeletePost(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !deleted {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "post successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// adminStatsHandler reports the analytics totals gathered since start-up.
func (app *application) adminStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats := analyticsservice.Stats{PageViews: map[string]int{}, Events: map[string]int{}}
	if app.collector != nil {
		stats = app.collector.Stats()
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"stats": stats}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
