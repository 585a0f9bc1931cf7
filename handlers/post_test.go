package handlers

import (
	"testing"

	"postboard/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	app, _, db := setupTestServer(t)
	ada := createTestUser(t, app, "Ada Lovelace", "ada", "ada@example.com")

	t.Run("valid post", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/v1/posts", map[string]any{
			"userId":  ada["id"],
			"title":   "Notes on the Analytical Engine",
			"content": "Full text.",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		body := decodeMap(t, resp)
		assert.Equal(t, ada["id"], body["userId"])
		assert.NotEmpty(t, body["id"])
	})

	t.Run("nonexistent user is rejected before any write", func(t *testing.T) {
		var before int64
		db.Model(&models.Post{}).Count(&before)

		resp := doRequest(t, app, "POST", "/api/v1/posts", map[string]any{
			"userId":  "6f1e1a2b-0000-4000-8000-000000000000",
			"title":   "T",
			"content": "C",
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		body := decodeMap(t, resp)
		assert.Equal(t, models.CodeForeignKeyNotFound, body["code"])
		assert.Contains(t, body["error"], "User")

		var after int64
		db.Model(&models.Post{}).Count(&after)
		assert.Equal(t, before, after, "no document may be created")
	})

	t.Run("malformed user id behaves like a missing user", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/v1/posts", map[string]any{
			"userId":  "not-a-uuid",
			"title":   "T",
			"content": "C",
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, models.CodeForeignKeyNotFound, decodeMap(t, resp)["code"])
	})

	t.Run("missing title", func(t *testing.T) {
		resp := doRequest(t, app, "POST", "/api/v1/posts", map[string]any{
			"userId":  ada["id"],
			"content": "C",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, models.CodeMissingField, decodeMap(t, resp)["code"])
	})
}

func TestListPosts(t *testing.T) {
	app, _, _ := setupTestServer(t)
	ada := createTestUser(t, app, "Ada Lovelace", "ada", "ada@example.com")
	grace := createTestUser(t, app, "Grace Hopper", "grace", "grace@example.com")
	createTestPost(t, app, ada["id"].(string), "A1", "c")
	createTestPost(t, app, grace["id"].(string), "G1", "c")

	t.Run("unfiltered", func(t *testing.T) {
		resp := doRequest(t, app, "GET", "/api/v1/posts", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decodeList(t, resp), 2)
	})

	t.Run("filtered by user", func(t *testing.T) {
		resp := doRequest(t, app, "GET", "/api/v1/posts?userId="+ada["id"].(string), nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		list := decodeList(t, resp)
		require.Len(t, list, 1)
		assert.Equal(t, "A1", list[0]["title"])
	})

	t.Run("nonexistent filter user is an error, not an empty list", func(t *testing.T) {
		resp := doRequest(t, app, "GET", "/api/v1/posts?userId=6f1e1a2b-0000-4000-8000-000000000000", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		body := decodeMap(t, resp)
		assert.Equal(t, models.CodeResourceNotFound, body["code"])
		assert.Equal(t, "User not found", body["error"])
	})

	t.Run("malformed filter user id", func(t *testing.T) {
		resp := doRequest(t, app, "GET", "/api/v1/posts?userId=nope", nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid user id", decodeMap(t, resp)["error"])
	})
}

func TestGetPost(t *testing.T) {
	app, _, _ := setupTestServer(t)
	ada := createTestUser(t, app, "Ada Lovelace", "ada", "ada@example.com")
	post := createTestPost(t, app, ada["id"].(string), "T", "C")

	resp := doRequest(t, app, "GET", "/api/v1/posts/"+post["id"].(string), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "T", decodeMap(t, resp)["title"])

	resp = doRequest(t, app, "GET", "/api/v1/posts/garbage", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid post id", decodeMap(t, resp)["error"])
}

func TestUpdatePost(t *testing.T) {
	app, _, _ := setupTestServer(t)
	ada := createTestUser(t, app, "Ada Lovelace", "ada", "ada@example.com")
	post := createTestPost(t, app, ada["id"].(string), "Original", "C")
	id := post["id"].(string)

	t.Run("path and body id mismatch rejected before store access", func(t *testing.T) {
		resp := doRequest(t, app, "PATCH", "/api/v1/posts/"+id, map[string]any{
			"id":    "6f1e1a2b-0000-4000-8000-000000000000",
			"title": "Hijacked",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		body := decodeMap(t, resp)
		assert.Equal(t, models.CodePathBodyIDMismatch, body["code"])
		assert.Equal(t, "Resource to update not found", body["error"])

		check := doRequest(t, app, "GET", "/api/v1/posts/"+id, nil)
		assert.Equal(t, "Original", decodeMap(t, check)["title"])
	})

	t.Run("valid update returns the updated document", func(t *testing.T) {
		resp := doRequest(t, app, "PATCH", "/api/v1/posts/"+id, map[string]any{
			"id":    id,
			"title": "Revised",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "Revised", decodeMap(t, resp)["title"])
	})

	t.Run("payload with dangling userId is rejected", func(t *testing.T) {
		resp := doRequest(t, app, "PATCH", "/api/v1/posts/"+id, map[string]any{
			"id":     id,
			"userId": "6f1e1a2b-0000-4000-8000-000000000000",
			"title":  "Should not apply",
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, models.CodeForeignKeyNotFound, decodeMap(t, resp)["code"])

		check := doRequest(t, app, "GET", "/api/v1/posts/"+id, nil)
		assert.Equal(t, "Revised", decodeMap(t, check)["title"])
	})
}

func TestDeletePost(t *testing.T) {
	app, _, _ := setupTestServer(t)
	ada := createTestUser(t, app, "Ada Lovelace", "ada", "ada@example.com")
	post := createTestPost(t, app, ada["id"].(string), "T", "C")
	id := post["id"].(string)

	// A comment on the post survives the delete; cascading is out of scope.
	resp := doRequest(t, app, "POST", "/api/v1/comments", map[string]any{
		"userId": ada["id"],
		"postId": id,
		"body":   "hi",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	commentID := decodeMap(t, resp)["id"].(string)

	resp = doRequest(t, app, "DELETE", "/api/v1/posts/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	check := doRequest(t, app, "GET", "/api/v1/posts/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, check.StatusCode)

	orphan := doRequest(t, app, "GET", "/api/v1/comments/"+commentID, nil)
	assert.Equal(t, fiber.StatusOK, orphan.StatusCode)
	assert.Equal(t, id, decodeMap(t, orphan)["postId"])
}
