// Package httputil provides the download plumbing used for boundary
// geometry: a file-backed response cache and retry with backoff.
//
// # Caching
//
// [Cache] stores JSON-encodable values under hashed file names in
// ~/.cache/refugeeflow/http/ with a TTL measured from the file's
// modification time. Keys are usually the source URL:
//
//	c, _ := httputil.NewCache("", 7*24*time.Hour)
//	var body []byte
//	if ok, _ := c.Get(url, &body); !ok {
//	    body = download(url)
//	    _ = c.Set(url, body)
//	}
//
// [Cache.Namespace] scopes keys when several sources share a directory.
//
// # Retry
//
// [Retry] re-runs an operation only when it fails with a [RetryableError],
// doubling the delay between attempts. Wrap network errors and 5xx
// responses; return everything else unwrapped so it fails immediately.
//
// The cache can be cleared with `refugeeflow cache clear`.
package httputil
