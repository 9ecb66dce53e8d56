package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sampleRun struct {
	Name        string
	TotalCycles uint64
}

func get(m *Monitor, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)

	m.Router().ServeHTTP(rec, req)

	return rec
}

var _ = Describe("Monitor", func() {
	var (
		m *Monitor
	)

	BeforeEach(func() {
		m = NewMonitor()
	})

	It("should not accept privileged ports", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(Equal(0))
	})

	It("should keep a valid port", func() {
		m.WithPortNumber(32776)

		Expect(m.portNumber).To(Equal(32776))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("Sweep", 10)
		bar.IncrementInProgress(3)
		bar.MoveInProgressToFinished(2)

		rec := get(m, "/api/progress")

		Expect(rec.Code).To(Equal(http.StatusOK))

		var bars []progressBarRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].ID).To(Equal(bar.ID))
		Expect(bars[0].Name).To(Equal("Sweep"))
		Expect(bars[0].Total).To(Equal(uint64(10)))
		Expect(bars[0].InProgress).To(Equal(uint64(1)))
		Expect(bars[0].Finished).To(Equal(uint64(2)))
	})

	It("should give each progress bar a unique ID", func() {
		a := m.CreateProgressBar("A", 1)
		b := m.CreateProgressBar("B", 1)

		Expect(a.ID).NotTo(Equal(b.ID))
	})

	It("should remove completed progress bars", func() {
		a := m.CreateProgressBar("A", 1)
		b := m.CreateProgressBar("B", 1)

		m.CompleteProgressBar(a)

		Expect(m.progressBars).To(Equal([]*ProgressBar{b}))
	})

	It("should list runs in the order they are registered", func() {
		m.RegisterRun("run_0001", sampleRun{Name: "run_0001"})
		m.RegisterRun("run_0000", sampleRun{Name: "run_0000"})
		m.RegisterRun("run_0001", sampleRun{Name: "run_0001", TotalCycles: 1})

		rec := get(m, "/api/runs")

		var names []string
		Expect(json.Unmarshal(rec.Body.Bytes(), &names)).To(Succeed())
		Expect(names).To(Equal([]string{"run_0001", "run_0000"}))
	})

	It("should serialize a run", func() {
		m.RegisterRun("run_0000", &sampleRun{Name: "run_0000", TotalCycles: 303})

		rec := get(m, "/api/run/run_0000")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.Len()).To(BeNumerically(">", 0))
	})

	It("should return 404 for an unknown run", func() {
		rec := get(m, "/api/run/run_9999")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should report resource usage", func() {
		rec := get(m, "/api/resource")

		var rsp resourceRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should collect a profile", func() {
		m.profileDuration = 10 * time.Millisecond

		rec := get(m, "/api/profile")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("SampleType"))
	})

	It("should start a server on a random port", func() {
		m.StartServer()

		Expect(m.Port()).To(BeNumerically(">", 0))
	})
})
