package handle

// ID names an actor for as long as it lives. The lower 32 bits are a slot
// index and the upper 32 bits a generation that bumps when the slot is
// released, so an ID held past its actor's destruction never resolves to
// whatever reuses the slot.
type ID uint64

// Zero is never handed out by a Pool.
const Zero ID = 0

func NewID(index uint32, generation uint32) ID {
	return ID(uint64(generation)<<32 | uint64(index))
}

func (id ID) Index() uint32      { return uint32(id) }
func (id ID) Generation() uint32 { return uint32(id >> 32) }
func (id ID) IsZero() bool       { return id == Zero }

// Pool allocates IDs with generational indices and a free list.
type Pool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
	live        int
}

func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (p *Pool) Create() ID {
	p.live++
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		// Generations start at 1 so slot 0 never yields Zero.
		p.generations = append(p.generations, 1)
	}
	return NewID(idx, p.generations[idx])
}

func (p *Pool) Alive(id ID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Release invalidates id. Releasing a stale or unknown ID is a no-op.
func (p *Pool) Release(id ID) {
	if !p.Alive(id) {
		return
	}
	idx := id.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	p.live--
}

// Len is the number of live IDs.
func (p *Pool) Len() int { return p.live }
