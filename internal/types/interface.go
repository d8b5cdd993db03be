package types

type Tokenizer interface {
	Tokenize() []Token
}

// Lazy tokenizer, restartable with Reset
type TokenIterator interface {
	Next() (Token, bool)
	Reset()
}

// Tokenize with statistics
type TokenizerWithStats interface {
	Tokenizer
	GetStats() TokenizeReport
}
