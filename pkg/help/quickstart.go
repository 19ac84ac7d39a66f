package help

const QuickstartYAML = `# quiz-solver Quick Start

commands:
  solve_one: |
    quiz-solver solve --url "https://quiz.example/task/1" --email you@example.com --secret s3cret

  dry_run: |
    quiz-solver solve --url "https://quiz.example/task/1" --email you@example.com --no-submit

  run_server: |
    QUIZ_SECRET=s3cret quiz-solver serve --listen :8080

  post_task: |
    curl -s localhost:8080/quiz -d '{"email":"you@example.com","secret":"s3cret","url":"https://quiz.example/task/1"}'

  list_tasks: |
    curl -s localhost:8080/tasks | yq '.tasks'

config:
  file: "config.yaml (override with --config)"
  keys:
    listen_addr: "front door bind address (default :8080)"
    expected_secret: "task secret, falls back to QUIZ_SECRET env"
    db_path: "SQLite task log path, empty disables logging"
    browser_url: "WebSocket URL of external Chrome, empty launches headless"
    render_timeout: "page render bound (default 60s)"

pipeline:
  - "Render the page in headless Chrome, JavaScript executed"
  - "Find the submission target (path, script, form, link, embedded JSON)"
  - "Locate the dataset: inline table, then linked csv/xlsx/pdf, then script answer"
  - "Classify the instruction: sum, mean, correlation, plot"
  - "POST the payload to the submission target"

answer_sentinels:
  no_dataset: "unable to locate dataset"
  no_answer: "no_answer_generated"
  plot: "attached_plot (PNG data URI in attachment field)"

error_behavior:
  - "No submission target on the page fails the task"
  - "Unparseable dataset candidates are skipped, not fatal"
  - "Computation failures become descriptive answer strings"
  - "Exit codes: 0=success, 1=failure"
`
