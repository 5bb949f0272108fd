package controllers

import (
	"encoding/json"
	"net/http"

	"pressroom/app/models"
	"pressroom/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index handles listing all comments on a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.commentService.ListPostComments(mux.Vars(r)["postId"])
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create handles creating a new comment on a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateCommentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	// The path names the post; it wins over anything in the body.
	in.Post = mux.Vars(r)["postId"]

	comment, err := cc.commentService.CreateComment(&in)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Edit handles updating an existing comment
func (cc *CommentController) Edit(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateCommentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.UpdateComment(mux.Vars(r)["id"], &in)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// Delete handles deleting a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	comment, err := cc.commentService.DeleteComment(mux.Vars(r)["id"])
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}
