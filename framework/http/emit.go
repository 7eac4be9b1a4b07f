package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/km-arc/go-message/framework/message"
)

// Emit writes res to w: headers under their canonical names, the status code
// and the body. A seekable body is rewound first so the whole of it is sent.
// The reason phrase is not sent; net/http always derives its own.
func Emit(w http.ResponseWriter, res *message.Response) error {
	status := res.StatusCode()
	if status == 0 {
		status = http.StatusOK
	}
	if status < 100 || status > 999 {
		return fmt.Errorf("emit response: invalid status code %d", status)
	}

	header := w.Header()
	for _, name := range res.HeaderNames() {
		if strings.EqualFold(name, message.HeaderHost) {
			continue
		}
		key := http.CanonicalHeaderKey(name)
		header.Del(key)
		for _, v := range res.Header(name) {
			header.Add(key, v)
		}
	}

	w.WriteHeader(status)

	body := res.Body()
	if body == nil || !bodyAllowed(status) {
		return nil
	}
	if body.IsSeekable() {
		if err := body.Rewind(); err != nil {
			return err
		}
	}
	if !body.IsReadable() {
		return nil
	}
	_, err := body.WriteTo(w)
	return err
}

func bodyAllowed(status int) bool {
	return !(status >= 100 && status < 200) &&
		status != http.StatusNoContent &&
		status != http.StatusNotModified
}
