package api

import (
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rpupo63/portfolio-backend/content"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/storage"
)

const maxFormMemory = 32 << 20

var (
	faqKey     = regexp.MustCompile(`^faqs\[(\d+)\]\[(id|question|answer)\]$`)
	indexedKey = regexp.MustCompile(`^([a-z_]+)\[(\d*)\]$`)
	formTypes  = []string{"multipart/form-data", "application/x-www-form-urlencoded"}
)

// form is a parsed admin form. Uploads are read lazily and capped at maxUpload bytes, so an
// oversized file is still reported by field validation instead of failing the request.
type form struct {
	values    url.Values
	files     map[string][]*multipart.FileHeader
	maxUpload int64
}

func readForm(r *http.Request, maxUpload int64) (*form, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, formError(err)
		}
		return &form{values: r.MultipartForm.Value, files: r.MultipartForm.File, maxUpload: maxUpload}, nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, formError(err)
		}
		return &form{values: r.PostForm, maxUpload: maxUpload}, nil
	}
	return nil, errs.NewUnsupportedMediaTypeError(mediaType, formTypes)
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errs.NewMaxBodySizeExceededError(tooLarge.Limit)
	}
	return errs.NewMalformedPayloadError("form", err)
}

func (f *form) get(key string) string {
	return f.values.Get(key)
}

// list collects key, key[] and key[N] values in index order. It is nil when the key is absent
// and empty when only blank values were sent, which clears the list.
func (f *form) list(key string) []string {
	type entry struct {
		index int
		value string
	}
	var entries []entry
	present := false
	for k, vs := range f.values {
		idx := -1
		if k != key {
			m := indexedKey.FindStringSubmatch(k)
			if m == nil || m[1] != key {
				continue
			}
			if m[2] != "" {
				idx, _ = strconv.Atoi(m[2])
			}
		}
		present = true
		for _, v := range vs {
			if v = strings.TrimSpace(v); v != "" {
				entries = append(entries, entry{idx, v})
			}
		}
	}
	if !present {
		return nil
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].index < entries[j].index })
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.value)
	}
	return out
}

func (f *form) upload(key string) (*storage.Upload, error) {
	headers := f.files[key]
	if len(headers) == 0 {
		return nil, nil
	}
	up, err := storage.FromFileHeader(headers[0], f.maxUpload)
	if err != nil {
		return nil, errs.NewMalformedPayloadError("file", err)
	}
	return up, nil
}

// uploads reads every file sent as key, key[] or key[N].
func (f *form) uploads(key string) ([]*storage.Upload, error) {
	var names []string
	for k := range f.files {
		if k == key {
			names = append(names, k)
			continue
		}
		if m := indexedKey.FindStringSubmatch(k); m != nil && m[1] == key {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	var out []*storage.Upload
	for _, name := range names {
		for _, fh := range f.files[name] {
			up, err := storage.FromFileHeader(fh, f.maxUpload)
			if err != nil {
				return nil, errs.NewMalformedPayloadError("file", err)
			}
			out = append(out, up)
		}
	}
	return out, nil
}

// faqs collects faqs[N][id|question|answer] fields in index order.
func (f *form) faqs() []content.FaqInput {
	rows := map[int]*content.FaqInput{}
	for k, vs := range f.values {
		m := faqKey.FindStringSubmatch(k)
		if m == nil || len(vs) == 0 {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		row, ok := rows[idx]
		if !ok {
			row = &content.FaqInput{}
			rows[idx] = row
		}
		switch m[2] {
		case "id":
			row.ID = vs[0]
		case "question":
			row.Question = vs[0]
		case "answer":
			row.Answer = vs[0]
		}
	}

	indexes := make([]int, 0, len(rows))
	for idx := range rows {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	out := make([]content.FaqInput, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, *rows[idx])
	}
	return out
}

// decodeContact reads the contact form from JSON or form encoding.
func decodeContact(r *http.Request) (content.ContactInput, error) {
	var in content.ContactInput
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return in, errs.NewInvalidJSONError(err)
		}
		return in, nil
	}

	f, err := readForm(r, 0)
	if err != nil {
		return in, err
	}
	in.FirstName = f.get("first_name")
	in.LastName = f.get("last_name")
	in.Email = f.get("email")
	in.Subject = f.get("subject")
	in.Content = f.get("content")
	return in, nil
}
