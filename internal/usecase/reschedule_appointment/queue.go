package reschedule_appointment

import "sync"

// commitQueue выдает билеты в порядке завершения жестов и пропускает
// коммиты строго по очереди билетов
type commitQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	next    uint64
	serving uint64
}

func newCommitQueue() *commitQueue {
	q := &commitQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// take выдает следующий билет
func (q *commitQueue) take() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := q.next
	q.next++
	return t
}

// wait блокирует, пока не подойдет очередь билета
func (q *commitQueue) wait(ticket uint64) {
	q.mu.Lock()
	for q.serving != ticket {
		q.cond.Wait()
	}
	q.mu.Unlock()
}

// done передает очередь следующему билету
func (q *commitQueue) done() {
	q.mu.Lock()
	q.serving++
	q.mu.Unlock()
	q.cond.Broadcast()
}

// pending число выданных и еще не завершенных билетов
func (q *commitQueue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int(q.next - q.serving)
}
