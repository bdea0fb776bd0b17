package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	otpPattern   = regexp.MustCompile(`^\d{6}$`)
)

// Client is the single point of contact with the collection service. Every
// call takes a context so callers can cancel in-flight work when the view
// that issued it is torn down.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New builds a client against baseURL (e.g. "https://api.example.com"). The
// underlying http.Client carries a cookie jar so session cookies survive
// across calls.
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient is New with a caller-supplied http.Client, mostly for tests.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// SetToken installs the bearer token sent on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

type LoginResult struct {
	ID           uint   `json:"ID"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates and installs the returned access token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/user/login", nil, body, &out); err != nil {
		return nil, err
	}
	c.token = out.AccessToken
	return &out, nil
}

// List fetches a page of collections. Zero-valued filters are not sent.
func (c *Client) List(ctx context.Context, filters ListFilters) (*CollectionPage, error) {
	q := url.Values{}
	if filters.Scope != "" {
		q.Set("filter", filters.Scope)
	}
	if filters.Search != "" {
		q.Set("search", filters.Search)
	}
	if filters.Sort != "" {
		q.Set("sort", filters.Sort)
	}
	if filters.Limit > 0 {
		q.Set("limit", strconv.Itoa(filters.Limit))
	}
	if filters.Offset > 0 {
		q.Set("offset", strconv.Itoa(filters.Offset))
	}
	if filters.UserID > 0 {
		q.Set("user_id", strconv.FormatUint(uint64(filters.UserID), 10))
	}

	var out CollectionPage
	if err := c.do(ctx, http.MethodGet, "/api/collections", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches the full aggregate: photos and collaborators included.
func (c *Client) Get(ctx context.Context, id uint) (*Collection, error) {
	var out struct {
		Collection Collection `json:"collection"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/collections/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Collection, nil
}

// Create validates the payload locally, then creates the collection. The
// server remains the source of truth for ownership and uniqueness errors.
func (c *Client) Create(ctx context.Context, req CreateCollectionRequest) (*Collection, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	var out struct {
		Collection Collection `json:"collection"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/collections", nil, req, &out); err != nil {
		return nil, err
	}
	return &out.Collection, nil
}

// Update applies a partial update; nil fields are left unchanged server-side.
func (c *Client) Update(ctx context.Context, id uint, req UpdateCollectionRequest) (*Collection, error) {
	if req.Title != nil {
		if n := len(strings.TrimSpace(*req.Title)); n < 3 || n > 50 {
			return nil, &ValidationError{Field: "title", Message: "must be 3-50 characters"}
		}
	}
	if req.Description != nil && len(*req.Description) > 500 {
		return nil, &ValidationError{Field: "description", Message: "must be at most 500 characters"}
	}

	var out struct {
		Collection Collection `json:"collection"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/collections/%d", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out.Collection, nil
}

// Delete removes a collection. A NotFound answer means the collection is
// already gone, which the caller treats as success.
func (c *Client) Delete(ctx context.Context, id uint) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/collections/%d", id), nil, nil, nil)
	if err != nil && IsNotFound(err) {
		return nil
	}
	return err
}

// ListUserPhotos pages through a user's uploads for the wizard's picker.
func (c *Client) ListUserPhotos(ctx context.Context, userID uint, search string, limit, offset int) (*PhotoPage, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	var out PhotoPage
	path := fmt.Sprintf("/api/collections/user/%d/photos", userID)
	if err := c.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackView records one view interaction ("hover", "click", "page").
func (c *Client) TrackView(ctx context.Context, id uint, interaction string) (*ViewResult, error) {
	var out ViewResult
	body := map[string]string{"interaction": interaction}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/collections/%d/view", id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleLike likes or unlikes; the returned count is authoritative.
func (c *Client) ToggleLike(ctx context.Context, id uint) (*LikeResult, error) {
	var out LikeResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/collections/%d/like", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetLikeStatus(ctx context.Context, id uint) (*LikeStatus, error) {
	var out LikeStatus
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/collections/%d/like-status", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetComments(ctx context.Context, id uint, limit, offset int) (*CommentPage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	var out CommentPage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/collections/%d/comments", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddComment appends a comment and returns it with the new total.
func (c *Client) AddComment(ctx context.Context, id uint, content string) (*CommentResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Field: "content", Message: "must not be empty"}
	}
	if len(content) > 1000 {
		return nil, &ValidationError{Field: "content", Message: "must be at most 1000 characters"}
	}

	var out CommentResult
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/collections/%d/comments", id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LikeComment(ctx context.Context, commentID uint) (*CommentLikeResult, error) {
	var out CommentLikeResult
	path := fmt.Sprintf("/api/collections/comments/%d/like", commentID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCollaborators(ctx context.Context, id uint) ([]Collaborator, error) {
	var out struct {
		Collaborators []Collaborator `json:"collaborators"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/collections/%d/collaborators", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Collaborators, nil
}

// InviteCollaborator sends an owner-initiated email invite.
func (c *Client) InviteCollaborator(ctx context.Context, id uint, email, role string) (*Collaborator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Field: "email", Message: "malformed email address"}
	}

	var out struct {
		Collaborator Collaborator `json:"collaborator"`
	}
	body := map[string]string{"email": email}
	if role != "" {
		body["collaboratorRole"] = role
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/collections/%d/collaborators", id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Collaborator, nil
}

// Join redeems a 6-digit invite code. The format check runs locally; a code
// that is well-formed but wrong fails server-side with a uniform message.
func (c *Client) Join(ctx context.Context, id uint, otpCode string) error {
	if !otpPattern.MatchString(otpCode) {
		return &ValidationError{Field: "otpCode", Message: "code must be exactly 6 digits"}
	}
	body := map[string]string{"otpCode": otpCode}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/collections/%d/join", id), nil, body, nil)
}

// ResendInvite rotates and redelivers a pending invitation's code.
func (c *Client) ResendInvite(ctx context.Context, id, collaboratorID uint) error {
	path := fmt.Sprintf("/api/collections/%d/collaborators/%d/resend", id, collaboratorID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

func (c *Client) RemoveCollaborator(ctx context.Context, id, collaboratorID uint) error {
	path := fmt.Sprintf("/api/collections/%d/collaborators/%d", id, collaboratorID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// RequestAccess asks to join a public collaborative collection.
func (c *Client) RequestAccess(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/collections/%d/request-access", id), nil, nil, nil)
}

// ApproveAccessRequest lets the owner accept a pending self-request.
func (c *Client) ApproveAccessRequest(ctx context.Context, id, collaboratorID uint) error {
	path := fmt.Sprintf("/api/collections/%d/collaborators/%d/approve", id, collaboratorID)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}

func (c *Client) CheckMembership(ctx context.Context, id uint) (*Membership, error) {
	var out Membership
	path := fmt.Sprintf("/api/collection-uploads/%d/check-membership", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadFile is one part of a multipart upload.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// Upload pushes photos into a collection. Owner or accepted collaborator only.
func (c *Client) Upload(ctx context.Context, id uint, files []UploadFile, title, description, tags, category string) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, &ValidationError{Field: "photos", Message: "at least one file is required"}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := writer.CreateFormFile("photos[]", f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, err
		}
	}
	for key, value := range map[string]string{
		"title": title, "description": description, "tags": tags, "category": category,
	} {
		if value != "" {
			writer.WriteField(key, value)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/collection-uploads/%d/upload", id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, responseError(resp)
	}

	var out UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do issues one JSON request. Non-2xx answers become *RequestError, transport
// failures become *NetworkError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return responseError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func responseError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	json.Unmarshal(data, &payload)

	message := payload.Error
	if message == "" {
		message = "HTTP " + strconv.Itoa(resp.StatusCode)
	}
	return &RequestError{Status: resp.StatusCode, Message: message}
}

func validateCreate(req CreateCollectionRequest) error {
	if n := len(strings.TrimSpace(req.Title)); n < 3 || n > 50 {
		return &ValidationError{Field: "title", Message: "must be 3-50 characters"}
	}
	if len(req.Description) > 500 {
		return &ValidationError{Field: "description", Message: "must be at most 500 characters"}
	}
	if len(req.PhotoIDs) == 0 {
		return &ValidationError{Field: "photoIds", Message: "at least one photo is required"}
	}
	for _, email := range req.CollaboratorEmails {
		if !emailPattern.MatchString(email) {
			return &ValidationError{Field: "collaboratorEmails", Message: "malformed email: " + email}
		}
	}
	return nil
}
