package web_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jgrady/scrub/internal/blob"
	"github.com/jgrady/scrub/internal/registry"
	"github.com/jgrady/scrub/internal/web"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	blobs, err := blob.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := web.NewServer(registry.NewMemory(), blobs, 10<<20)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func upload(t *testing.T, ts *httptest.Server, filename, content string) map[string]any {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Post(ts.URL+"/api/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status %d", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func fileID(t *testing.T, uploadResp map[string]any) string {
	t.Helper()
	info, ok := uploadResp["file_info"].(map[string]any)
	if !ok {
		t.Fatalf("no file_info in %v", uploadResp)
	}
	id, _ := info["id"].(string)
	if id == "" {
		t.Fatalf("no id in %v", info)
	}
	return id
}

func TestUploadPreviewAndStats(t *testing.T) {
	ts := newTestServer(t)
	out := upload(t, ts, "people.csv", "name,age\nAlice,30\nBob,\n")

	preview, ok := out["preview_data"].([]any)
	if !ok || len(preview) != 2 {
		t.Fatalf("preview_data: %v", out["preview_data"])
	}
	rec := preview[1].(map[string]any)
	if rec["age"] != "" {
		t.Fatalf("missing cell should preview as empty string, got %v", rec["age"])
	}

	st, ok := out["statistics"].(map[string]any)
	if !ok {
		t.Fatalf("statistics: %v", out["statistics"])
	}
	if st["rows"] != float64(2) {
		t.Fatalf("rows: %v", st["rows"])
	}

	cols, ok := out["columns"].([]any)
	if !ok || len(cols) != 2 || cols[0] != "name" {
		t.Fatalf("columns: %v", out["columns"])
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	ts := newTestServer(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "data.parquet")
	_, _ = fw.Write([]byte("x"))
	_ = mw.Close()

	resp, err := http.Post(ts.URL+"/api/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}

func TestCleanPipeline(t *testing.T) {
	ts := newTestServer(t)
	csv := "name,age\nAlice,30\nAlice,30\nBob,\n"
	id := fileID(t, upload(t, ts, "people.csv", csv))

	form := url.Values{
		"file_id": {id},
		"options": {`{"remove_duplicates":true,"handle_missing":"drop"}`},
	}
	resp, err := http.PostForm(ts.URL+"/api/clean", form)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clean status %d", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}

	if out["original_rows"] != float64(3) {
		t.Fatalf("original_rows: %v", out["original_rows"])
	}
	// dedupe removes the duplicate Alice, drop removes Bob
	if out["cleaned_rows"] != float64(1) {
		t.Fatalf("cleaned_rows: %v", out["cleaned_rows"])
	}
	cleanedID, _ := out["cleaned_file_id"].(string)
	if cleanedID == "" {
		t.Fatal("no cleaned_file_id")
	}

	// cleaned file is downloadable
	dl, err := http.Get(ts.URL + "/api/download/" + cleanedID)
	if err != nil {
		t.Fatal(err)
	}
	defer dl.Body.Close()
	if dl.StatusCode != http.StatusOK {
		t.Fatalf("download status %d", dl.StatusCode)
	}
	if ct := dl.Header.Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type: %s", ct)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(dl.Body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Alice,30") {
		t.Fatalf("download body:\n%s", buf.String())
	}
}

func TestCleanRejectsBadOptions(t *testing.T) {
	ts := newTestServer(t)
	id := fileID(t, upload(t, ts, "a.csv", "x\n1\n"))

	form := url.Values{
		"file_id": {id},
		"options": {`{"no_such_option":true}`},
	}
	resp, err := http.PostForm(ts.URL+"/api/clean", form)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}

func TestCleanSkipsMissingMergeSource(t *testing.T) {
	ts := newTestServer(t)
	id := fileID(t, upload(t, ts, "a.csv", "x\n1\n2\n"))

	form := url.Values{
		"file_id": {id},
		"options": {`{"merge_source_ids":["does-not-exist"]}`},
	}
	resp, err := http.PostForm(ts.URL+"/api/clean", form)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["original_rows"] != float64(2) {
		t.Fatalf("original_rows: %v", out["original_rows"])
	}
}

func TestCleanMergesSources(t *testing.T) {
	ts := newTestServer(t)
	idA := fileID(t, upload(t, ts, "a.csv", "x,y\n1,10\n2,20\n"))
	idB := fileID(t, upload(t, ts, "b.csv", "x,z\n3,30\n"))

	form := url.Values{
		"file_id": {idA},
		"options": {`{"merge_source_ids":["` + idB + `"]}`},
	}
	resp, err := http.PostForm(ts.URL+"/api/clean", form)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["original_rows"] != float64(3) {
		t.Fatalf("original_rows: %v", out["original_rows"])
	}
	cols, _ := out["columns"].([]any)
	if len(cols) != 3 {
		t.Fatalf("columns: %v", cols)
	}
}

func TestFileDataPagination(t *testing.T) {
	ts := newTestServer(t)
	var sb strings.Builder
	sb.WriteString("n\n")
	for i := 0; i < 7; i++ {
		sb.WriteString(strings.Repeat("1", i+1) + "\n")
	}
	id := fileID(t, upload(t, ts, "nums.csv", sb.String()))

	resp, err := http.Get(ts.URL + "/api/file/" + id + "/data?page=1&page_size=3")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["total_rows"] != float64(7) || out["total_pages"] != float64(3) {
		t.Fatalf("totals: %v / %v", out["total_rows"], out["total_pages"])
	}
	data, _ := out["data"].([]any)
	if len(data) != 3 {
		t.Fatalf("page size: %d", len(data))
	}
}

func TestFileDataNegativePage(t *testing.T) {
	ts := newTestServer(t)
	id := fileID(t, upload(t, ts, "nums.csv", "n\n1\n2\n3\n"))

	resp, err := http.Get(ts.URL + "/api/file/" + id + "/data?page=-1&page_size=-5")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["page"] != float64(0) {
		t.Fatalf("page: %v", out["page"])
	}
	data, _ := out["data"].([]any)
	if len(data) != 3 {
		t.Fatalf("got %d rows, want 3", len(data))
	}
}

func TestDeleteThenGone(t *testing.T) {
	ts := newTestServer(t)
	id := fileID(t, upload(t, ts, "a.csv", "x\n1\n"))

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/file/"+id, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/download/" + id)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("download after delete: %d, want 404", resp.StatusCode)
	}
}

func TestListFiles(t *testing.T) {
	ts := newTestServer(t)
	upload(t, ts, "a.csv", "x\n1\n")
	upload(t, ts, "b.csv", "x\n2\n")

	resp, err := http.Get(ts.URL + "/api/files")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var files []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0]["filename"] != "a.csv" || files[1]["filename"] != "b.csv" {
		t.Fatalf("order: %v", files)
	}
}
