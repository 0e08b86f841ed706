package elephant

import (
	"runtime"
	"sync"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/util"
	log "github.com/sirupsen/logrus"
)

type (
	// indexedRecord carries a record together with its position in the input
	indexedRecord struct {
		index  int
		record parser.ConnectionRecord
	}

	//analyzer classifies records on a pool of goroutines
	analyzer struct {
		conf             Config             // thresholds every record is measured against
		slots            []Result           // one slot per input record
		qualified        []bool             // whether the slot at the same index qualified
		analyzedCallback func()             // called after each record is classified
		analysisChannel  chan indexedRecord // holds unclassified records
		analysisWg       sync.WaitGroup     // wait for analysis to finish
	}
)

// newAnalyzer creates an analyzer with room for count records
func newAnalyzer(conf Config, count int, analyzedCallback func()) *analyzer {
	return &analyzer{
		conf:             conf,
		slots:            make([]Result, count),
		qualified:        make([]bool, count),
		analyzedCallback: analyzedCallback,
		analysisChannel:  make(chan indexedRecord),
	}
}

// collect queues a record for classification
func (a *analyzer) collect(datum indexedRecord) {
	a.analysisChannel <- datum
}

// close waits for the analyzer to finish
func (a *analyzer) close() {
	close(a.analysisChannel)
	a.analysisWg.Wait()
}

// start kicks off a new analysis thread. Each record index is written by
// exactly one goroutine, so the slots need no locking.
func (a *analyzer) start() {
	a.analysisWg.Add(1)
	go func() {
		for datum := range a.analysisChannel {
			res, ok := classifyRecord(datum.record, a.conf)
			a.slots[datum.index] = res
			a.qualified[datum.index] = ok
			if a.analyzedCallback != nil {
				a.analyzedCallback()
			}
		}
		a.analysisWg.Done()
	}()
}

// results gathers the qualifying slots in input order
func (a *analyzer) results() []Result {
	var results []Result
	for i, ok := range a.qualified {
		if ok {
			results = append(results, a.slots[i])
		}
	}
	return results
}

// ClassifyParallel gives the same results as Classify, spreading the per
// record work over threads goroutines before a single final sort. threads
// below one uses half of the available CPUs. progress, when not nil, is
// called once per classified record and must be safe for concurrent use.
func ClassifyParallel(records []parser.ConnectionRecord, conf Config, threads int,
	logger *log.Entry, progress func()) []Result {

	if threads < 1 {
		threads = util.Max(1, runtime.NumCPU()/2)
	}

	analyzerWorker := newAnalyzer(conf, len(records), progress)
	for i := 0; i < threads; i++ {
		analyzerWorker.start()
	}

	for i, rec := range records {
		analyzerWorker.collect(indexedRecord{index: i, record: rec})
	}
	analyzerWorker.close()

	results := analyzerWorker.results()
	sortResults(results, conf.SortBy, logger)
	return results
}
