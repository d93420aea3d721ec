package web

const pageHTML = `<!doctype html>
<html data-theme="{{.Theme}}">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>sleepcalc</title>
  {{if .ShareDescription}}
  <meta name="description" content="{{.ShareDescription}}">
  <meta property="og:description" content="{{.ShareDescription}}">
  {{end}}
  <style>
    :root { --accent: #7e57c2; --accent-dark: #5e35b1; --tint: #f3eefc; }
    [data-theme="blue"]   { --accent: #1976d2; --accent-dark: #1565c0; --tint: #e8f1fb; }
    [data-theme="green"]  { --accent: #2e7d32; --accent-dark: #1b5e20; --tint: #eaf5eb; }
    [data-theme="pink"]   { --accent: #d81b60; --accent-dark: #ad1457; --tint: #fce8ef; }
    [data-theme="orange"] { --accent: #ef6c00; --accent-dark: #e65100; --tint: #fdf0e4; }

    body { font-family: system-ui, sans-serif; margin: 0 auto; padding: 24px; max-width: 720px; box-sizing: border-box; }
    * { box-sizing: border-box; }
    .err { color: #b00020; margin: 12px 0; padding: 10px; background: #ffebee; border-radius: 6px; }
    .mono { font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", monospace; }
    footer { margin-top: 40px; color: #666; font-size: 0.9em; text-align: center; }

    .modes { display: flex; gap: 8px; margin-bottom: 16px; }
    .modes label { flex: 1; text-align: center; padding: 10px; border: 1px solid var(--accent); border-radius: 6px; cursor: pointer; }
    .modes input { display: none; }
    .modes input:checked + span { font-weight: 600; color: var(--accent-dark); }
    .clock { text-align: center; padding: 20px; background: var(--tint); border-radius: 10px; margin-bottom: 16px; }
    .clock-label { font-size: 0.8em; letter-spacing: 0.08em; color: #555; }
    .clock-row { display: flex; align-items: center; justify-content: center; gap: 12px; margin-top: 8px; }
    .clock-row input { font-size: 2em; padding: 4px 8px; border: 1px solid #ccc; border-radius: 6px; }
    .field { margin-bottom: 14px; }
    .field label { display: block; font-weight: 500; color: #333; margin-bottom: 4px; }
    .stepper { display: flex; align-items: center; gap: 8px; }
    .stepper input { width: 80px; padding: 8px 10px; font-size: 1em; border: 1px solid #ccc; border-radius: 6px; }
    button { padding: 8px 14px; border-radius: 6px; border: 1px solid #ccc; background: #f5f5f5; cursor: pointer; font-size: 0.95em; }
    button.primary { width: 100%; padding: 12px; background: var(--accent); color: #fff; border: none; font-weight: 500; }
    button.primary:hover { background: var(--accent-dark); }
    details { margin: 12px 0; }
    .offscreen { position: absolute; left: -9999px; }

    .results { display: grid; grid-template-columns: 1fr 1fr; gap: 12px; margin-top: 20px; }
    @media (max-width: 480px) { .results { grid-template-columns: 1fr; } }
    .result-card { border: 1px solid #e0e0e0; border-radius: 10px; padding: 16px; text-align: center; }
    .result-card.recommended { border-color: var(--accent); background: var(--tint); }
    .result-time { font-size: 1.8em; font-weight: 600; }
    .result-label { color: #555; margin-top: 4px; }

    .themes { display: flex; gap: 6px; justify-content: center; margin-top: 24px; }
    .themes button { text-transform: capitalize; }
    .themes button.active { border-color: var(--accent); color: var(--accent-dark); font-weight: 600; }
  </style>
</head>
<body>
  <form method="POST" action="/calc">
    <button type="submit" class="offscreen" tabindex="-1" aria-hidden="true">Calculate</button>
    <div class="modes">
      <label><input type="radio" name="mode" value="bedtime" {{if eq .Mode "bedtime"}}checked{{end}}><span>When should I go to bed?</span></label>
      <label><input type="radio" name="mode" value="waketime" {{if eq .Mode "waketime"}}checked{{end}}><span>When should I wake up?</span></label>
    </div>

    <div class="clock">
      <div class="clock-label">{{.ClockLabel}}</div>
      <div class="clock-row">
        <button type="submit" name="adjust" value="-15" aria-label="15 minutes earlier">&minus;</button>
        <input id="time" name="time" type="time" value="{{.Time}}" required>
        <button type="submit" name="adjust" value="15" aria-label="15 minutes later">+</button>
      </div>
    </div>

    <details {{if or (ne .FallAsleep 15) (ne .SleepCycles 5)}}open{{end}}>
      <summary>Advanced options</summary>
      <div class="field">
        <label for="sleep_cycles">Preferred sleep cycles</label>
        <div class="stepper">
          <button type="submit" name="step" value="sleep_cycles:-">&minus;</button>
          <input id="sleep_cycles" name="sleep_cycles" type="number" min="{{.SleepCyclesBounds.Min}}" max="{{.SleepCyclesBounds.Max}}" step="{{.SleepCyclesBounds.Step}}" value="{{.SleepCycles}}">
          <button type="submit" name="step" value="sleep_cycles:+">+</button>
        </div>
      </div>
      <div class="field">
        <label for="fall_asleep">Minutes to fall asleep</label>
        <div class="stepper">
          <button type="submit" name="step" value="fall_asleep:-">&minus;</button>
          <input id="fall_asleep" name="fall_asleep" type="number" min="{{.FallAsleepBounds.Min}}" max="{{.FallAsleepBounds.Max}}" step="{{.FallAsleepBounds.Step}}" value="{{.FallAsleep}}">
          <button type="submit" name="step" value="fall_asleep:+">+</button>
        </div>
      </div>
    </details>

    <button type="submit" class="primary">Calculate</button>
  </form>

  {{if .Error}}<div class="err">{{.Error}}</div>{{end}}

  {{if .Results}}
    <h3>Suggested {{.ResultNoun}}</h3>
    <div class="results">
      {{range .Results}}
        <div class="result-card{{if .Recommended}} recommended{{end}}">
          <div class="result-time mono">{{.Time}}</div>
          <div class="result-label">{{.Label}}</div>
        </div>
      {{end}}
    </div>
  {{end}}

  <form class="themes" method="POST" action="/theme">
    <input type="hidden" name="return" value="{{.Return}}">
    {{$current := .Theme}}
    {{range .Themes}}
      <button type="submit" name="theme" value="{{.}}" {{if eq . $current}}class="active"{{end}}>{{.}}</button>
    {{end}}
  </form>

  <footer>sleepcalc v{{.Version}}</footer>
</body>
</html>`
