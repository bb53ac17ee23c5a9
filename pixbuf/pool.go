package pixbuf

import "sync"

// Pool is a thread-safe pool for reusing Buffer instances.
//
// Pool groups buffers by dimensions, format and origin. A buffer handed out
// by Get is always zeroed, so reuse is indistinguishable from a fresh
// allocation.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Buffer
	maxSize int // max buffers per bucket

	gets int
	puts int
}

// poolKey identifies a bucket of identical buffer specifications.
type poolKey struct {
	width  int
	height int
	format Format
	origin Origin
}

// NewPool creates a pool retaining at most maxPerBucket buffers of each
// specification. A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Buffer),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a zeroed buffer from the pool or allocates a new one.
func (p *Pool) Get(width, height int, format Format, origin Origin) (*Buffer, error) {
	key := poolKey{width: width, height: height, format: format, origin: origin}

	p.mu.Lock()
	p.gets++
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf.Clear()
		return buf, nil
	}
	p.mu.Unlock()

	buf, err := New(width, height, format, origin)
	if err != nil {
		p.mu.Lock()
		p.gets--
		p.mu.Unlock()
		return nil, err
	}
	return buf, nil
}

// Put returns a buffer to the pool. The caller must not touch buf afterwards.
// If buf is nil or its bucket is full, the buffer is dropped.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}

	key := poolKey{
		width:  buf.width,
		height: buf.height,
		format: buf.format,
		origin: buf.origin,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.puts++
	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Outstanding returns the number of buffers handed out by Get and not yet
// returned with Put.
func (p *Pool) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gets - p.puts
}
