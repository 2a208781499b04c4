// Package sqlfrag builds injection-safe MySQL statements from typed values
// without placeholders, and executes them through a thin connection-pool wrapper.
//
// Every builder returns a Frag: an immutable piece of SQL text that is already
// safe to concatenate. Values are escaped according to their Go type, identifiers
// are quoted with backticks, and Frags nested inside other Frags are inserted
// verbatim.
//
// # Quick Start
//
//	q, err := sqlfrag.SQL("select * from ? where name = ? and id in (?)",
//	    sqlfrag.Tbl("users"), "it's", []int{1, 2, 3})
//	// select * from `users` where name = 'it''s' and id in (1,2,3)
//
// # Templates
//
// SQL splits its template on '?' ("??" writes a literal '?'). Build takes the
// literal segments and values directly:
//
//	sqlfrag.Build([]string{"select ", ""}, sqlfrag.Int(4)) // select 4
//
// # Values
//
// Value is a sealed sum type: Null, Bool, Int, Uint, Float, BigInt, String,
// Bytes, Timestamp, Date, List, Absent, Frag and every Ident. ValueOf converts
// native Go values.
//
//	sqlfrag.EscapeValue(nil)                  // NULL
//	sqlfrag.EscapeValue(true)                 // 1
//	sqlfrag.EscapeValue([]byte{0x12, 0xab})   // x'12ab'
//	sqlfrag.EscapeValue([]int{})              // /*empty*/NULL
//
// Timestamps are written in an explicit zone (UTC unless set) and keep up to
// microsecond precision:
//
//	sqlfrag.TS(t).In(istanbul).WithFSP(3)
//
// # Identifiers
//
//	sqlfrag.Col("db", "users", "id")  // `db`.`users`.`id`
//	sqlfrag.Name("foo.bar")           // `foo.bar`
//	sqlfrag.Loose("foo.bar")          // `foo`.`bar`
//
// # Clauses
//
//	sqlfrag.SetMap(map[string]any{"a": 1, "b.c": "x"})
//	// `a`=1, `b`.`c`='x'
//
//	sqlfrag.InsertMap(sqlfrag.Tbl("t"), map[string]any{"a": 1},
//	    sqlfrag.OnDuplicateKey(sqlfrag.DuplicateKeyUpdate))
//	// INSERT INTO `t` SET `a`=1 ON DUPLICATE KEY UPDATE `a`=VALUES(`a`)
//
// # Execution
//
//	db, err := sqlfrag.ConnectWithConfig(ctx, cfg)
//	users, err := db.Query(ctx, q)
//	n, err := db.Count(ctx, q)
//
//	err = db.Transaction(ctx, func(tx *sqlfrag.Transaction) error {
//	    _, err := tx.Exec(ctx, debit)
//	    return err
//	})
//
// # Security
//
// Strings are escaped with MySQL backslash rules. The connection must not use
// a charset whose multi-byte characters can end in a backslash byte (big5,
// cp932, gb2312, gbk, gb18030, sjis) nor the NO_BACKSLASH_ESCAPES SQL mode;
// Config.Validate rejects both.
//
// # Thread Safety
//
// Builders are pure functions and safe for concurrent use. DB is safe for
// concurrent use; Conn and Transaction belong to one goroutine, except inside
// DB.Batch.
package sqlfrag
