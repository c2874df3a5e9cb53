package api

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"imagecdn/internal/applog"
	"imagecdn/internal/firewall"
	"imagecdn/internal/resource"
	"imagecdn/internal/storage"
)

const maxImageSize = 20 * 1024 * 1024 // 20 MiB, spec.md §4.5 step 3

// ingest implements POST /{class}/{id} — spec.md §4.5. The route is mounted
// per class, but per the flagged open question in spec.md §9 the handler
// hard-codes Avatars as the storage class regardless of which class
// segment the caller used; this is preserved verbatim.
func (d Deps) ingest(c *gin.Context) {
	if ip, ok := firewall.Allowed(d.Firewall, c.Request); !ok {
		applog.Warn("rejected upload from untrusted IP %v", ip)
		jsonError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	image, sigB64, err := demuxUpload(c.Request)
	if err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	if len(image) > maxImageSize {
		jsonError(c, http.StatusBadRequest, "Image is too big")
		return
	}

	digest := sha1.Sum(image)
	hash := hex.EncodeToString(digest[:])

	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Base64 could not be decoded")
		return
	}

	if d.Verifier == nil {
		jsonError(c, http.StatusInternalServerError, "Invalid public key")
		return
	}
	if !d.Verifier.Verify(image, sig) {
		applog.Warn("rejected upload with invalid signature, hash=%s", hash)
		jsonError(c, http.StatusUnauthorized, "Invalid signature")
		return
	}

	id := c.Param("id")
	filename, err := d.Cdn.Storage.Put(resource.Avatars, id, image, hash)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidFormat), errors.Is(err, storage.ErrUnsupportedFormat):
			jsonError(c, http.StatusBadRequest, err.Error())
		default:
			c.String(http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"filename": filename})
}

// demuxUpload streams the multipart body, demuxing exactly two expected
// fields: "image" (a file part) and "signature" (text). Any other field
// name fails the request immediately, mirroring spec.md §4.5 step 2.
func demuxUpload(r *http.Request) (image []byte, signature string, err error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, "", fmt.Errorf("malformed multipart body")
	}

	haveImage, haveSignature := false, false

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("malformed multipart body")
		}

		switch part.FormName() {
		case "image":
			if part.FileName() == "" {
				return nil, "", fmt.Errorf("Image is not a file")
			}
			data, readErr := io.ReadAll(io.LimitReader(part, maxImageSize+1))
			if readErr != nil {
				return nil, "", fmt.Errorf("failed to read image field")
			}
			image = data
			haveImage = true
		case "signature":
			data, readErr := io.ReadAll(part)
			if readErr != nil {
				return nil, "", fmt.Errorf("failed to read signature field")
			}
			signature = string(data)
			haveSignature = true
		default:
			return nil, "", fmt.Errorf("Invalid payload field %q", part.FormName())
		}
	}

	if !haveImage {
		return nil, "", fmt.Errorf("Missing image field in body")
	}
	if !haveSignature {
		return nil, "", fmt.Errorf("Missing signature field in body")
	}

	return image, signature, nil
}
