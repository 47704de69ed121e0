// Package roster holds the ordered per-section student lists that seat
// allocation consumes.
//
// # Overview
//
// A [Roster] is the parsed form of an uploaded workbook: an ordered list of
// sections, each with its students in exactly the order they were read. A
// roster is never consumed directly. Instead [Roster.Queues] materializes a
// fresh [QueueSet], one FIFO [Queue] per section, which an allocation run
// drains from the front.
//
//	r, err := roster.Import("exam.xlsx")
//	if err != nil {
//	    return err
//	}
//	queues := r.Queues()
//	q := queues.Get("CSE-A")
//	s, ok := q.PopFront()
//
// Queues only ever shrink. To allocate again from the beginning, call
// [Roster.Queues] again; there is no way to push a student back.
//
// # Input Formats
//
// [Import] chooses a reader by file extension:
//
//   - .xlsx: one sheet per section, header row with Roll_No and Subject columns
//   - .yaml, .yml: {sections: [{name, students: [{roll, subject}]}]}
//   - .json: same shape as YAML
//
// Every student needs a non-empty roll and subject. Rows that are entirely
// blank are skipped; a row with only one of the two fields is a data error
// that names the section and row.
package roster
